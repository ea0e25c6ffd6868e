package separate

import (
	"github.com/handiism/stem-splitter/internal/config"
	"github.com/handiism/stem-splitter/internal/model"
)

// Flags understood by the separation engine.
const (
	FlagOut      = "--out"
	FlagTwoStems = "--two-stems"
)

// BuildCommand assembles the argument vector for one run.
//
// The second return value is false when token was not a recognised mode and
// the four-stem default was used instead.
func BuildCommand(settings *config.Settings, folder string, files []string, token string) (model.Command, bool) {
	mode, ok := model.ParseMode(token)

	args := make([]string, 0, len(files)+5)
	args = append(args, settings.Program, FlagOut, folder)

	if mode == model.ModeTwoStems {
		args = append(args, FlagTwoStems, settings.TwoStemsStem)
	}

	args = append(args, files...)

	return model.Command{Args: args}, ok
}
