package cli

import (
	"errors"

	"github.com/MakeNowJust/heredoc"
)

var (
	ErrConfigNotFound = errors.New(heredoc.Doc(`
	Config file not found. Loading from defaults...

	Run "metasearch config init" to initialize a new configuration file
	Run "metasearch help environment" for more information.

	Alternatively, make a "metasearch.yaml" file in the current directory from the example given
`))
)
