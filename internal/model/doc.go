// Package model defines the core data structures used throughout
// the stem-splitter application.
//
// # Mode
//
// Mode selects how the separation engine splits each input:
//
//	mode, ok := model.ParseMode("2") // ModeTwoStems, true
//	mode, ok = model.ParseMode("x")  // ModeFourStems, false
//
// Any token other than "1" or "2" falls back to ModeFourStems. The boolean
// result lets callers warn about the fallback.
//
// # Request
//
// Request carries the operator's two decisions (folder and mode token) and the
// audio files discovered in the folder:
//
//	req := &model.Request{Folder: "/music", ModeToken: "2"}
//	req.Files, _ = ioutils.DiscoverAudioFiles(req.Folder, settings.Extensions)
//
// # Command and Result
//
// Command is the ordered token sequence handed to the external tool and Result
// is what came back from running it.
package model
