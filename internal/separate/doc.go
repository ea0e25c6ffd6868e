// Package separate builds and runs the external stem separation command.
//
// # Manager
//
// The Manager coordinates one run:
//
//  1. Resolve the folder path typed by the operator
//  2. Discover audio files directly inside it
//  3. Read ID3 tags of MP3 inputs (optional)
//  4. Build the command for the chosen mode
//  5. Run the command once, forwarding its output live
//  6. Collect the stems it wrote and write a playlist (optional)
//
// # Basic Usage
//
//	manager := separate.NewManager(settings, separate.NewExecExecutor(), func(event separate.ProgressEvent) {
//	    fmt.Println(event.Message)
//	})
//
//	if err := manager.Initialize(ctx, "/music"); err != nil {
//	    log.Fatal(err)
//	}
//
//	result, err := manager.Start(ctx, "2", separate.Streams{Stdout: os.Stdout, Stderr: os.Stderr})
//
// # Command Shape
//
//	<program> --out <folder> [--two-stems <stem>] <file1> ... <fileN>
//
// Any mode token other than "1" or "2" selects the four-stem default and
// emits a warning event.
//
// # Failure
//
// A non-zero exit of the external tool is reported as ErrCommandFailed. The
// command is never retried and nothing it wrote is removed.
package separate
