package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

// latexPreamble defines the \descitem and \descref commands that
// multi-page labels reference. \descitem labels a function's defining
// page; \descref hyperlinks a call site to that label.
const latexPreamble = `\documentclass[12pt, final]{article}

\usepackage{hyperref}
\usepackage[paperwidth=25.5in, paperheight=28.5in]{geometry}

\newcounter{desccount}
\newcommand{\descitem}[1]{%
    \refstepcounter{desccount}\label{#1}
}
\newcommand{\descref}[2][\undefined]{%
    \ifx#1\undefined%
        \hyperref[#2]{#2}%
    \else%
        \hyperref[#2]{#1}%
    \fi%
}%
`

// latexPreambleCommand creates the latex-preamble command.
func (c *CLI) latexPreambleCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "latex-preamble",
		Short: "Print the LaTeX preamble for multi-page charts",
		Long: `Latex-preamble prints a minimal LaTeX document preamble defining the
\descitem and \descref commands that labels produced with --multi-page
rely on. Copy the definitions into your own preamble when embedding the
charts in a larger document.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			fmt.Fprint(cmd.OutOrStdout(), latexPreamble)
			return nil
		},
	}
}
