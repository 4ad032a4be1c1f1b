// Copyright 2026 KrakLabs
//
// SPDX-License-Identifier: AGPL-3.0-only

package main

import (
	"fmt"
	"io"
	"log/slog"
	"os"

	flag "github.com/spf13/pflag"

	"github.com/kraklabs/typenames/internal/errors"
)

// bashCompletionTemplate is the bash completion script for typenames.
const bashCompletionTemplate = `#!/bin/bash

# Bash completion script for typenames
# Installation:
#   source <(typenames completion bash)

_typenames_completion() {
    local cur commands
    commands="scan inspect init completion"
    cur="${COMP_WORDS[COMP_CWORD]}"

    if [ $COMP_CWORD -eq 1 ]; then
        if [[ ${cur} == -* ]] ; then
            COMPREPLY=( $(compgen -W "--version --config --json --no-color --quiet --verbose" -- ${cur}) )
        else
            COMPREPLY=( $(compgen -W "${commands}" -- ${cur}) )
        fi
        return 0
    fi

    local cmd="${COMP_WORDS[1]}"
    case "${cmd}" in
        scan)
            if [[ ${cur} == -* ]] ; then
                COMPREPLY=( $(compgen -W "--exclude --workers --format --max-file-size --keep-going --metrics-addr --metrics-file" -- ${cur}) )
            else
                COMPREPLY=( $(compgen -d -- ${cur}) )
            fi
            ;;
        inspect)
            if [[ ${cur} == -* ]] ; then
                COMPREPLY=( $(compgen -W "--format" -- ${cur}) )
            elif [ $COMP_CWORD -eq 2 ]; then
                COMPREPLY=( $(compgen -f -X '!*.php' -- ${cur}) )
            fi
            ;;
        init)
            if [[ ${cur} == -* ]] ; then
                COMPREPLY=( $(compgen -W "--force" -- ${cur}) )
            fi
            ;;
        completion)
            if [ $COMP_CWORD -eq 2 ]; then
                COMPREPLY=( $(compgen -W "bash zsh fish" -- ${cur}) )
            fi
            ;;
    esac
}

complete -F _typenames_completion typenames
`

// zshCompletionTemplate is the zsh completion script for typenames.
const zshCompletionTemplate = `#compdef typenames

# Zsh completion script for typenames
# Installation:
#   typenames completion zsh > "${fpath[1]}/_typenames"

_typenames() {
    local -a commands
    commands=(
        'scan:List the type names of every declaration under a path'
        'inspect:Show the type names of one declaration'
        'init:Create .typenames.yaml'
        'completion:Generate shell completion script'
    )

    _arguments -C \
        '(- *)--version[Show version and exit]' \
        '--config[Path to .typenames.yaml]:config file:_files -g "*.yaml"' \
        '--json[Output as JSON]' \
        '--no-color[Disable colored output]' \
        '(-q --quiet)'{-q,--quiet}'[Suppress progress and informational output]' \
        '*'{-v,--verbose}'[Increase log verbosity]' \
        '1: :->command' \
        '*:: :->args'

    case $state in
        command)
            _describe 'command' commands
            ;;
        args)
            case $words[1] in
                scan)
                    _arguments \
                        '*--exclude[Glob of paths to skip]:glob:' \
                        '--workers[Files parsed concurrently]:workers:' \
                        '--format[Output format]:format:(text json yaml)' \
                        '--max-file-size[Skip larger files]:bytes:' \
                        '--keep-going[Exit successfully when files fail to parse]' \
                        '--metrics-addr[Prometheus metrics address]:address:' \
                        '--metrics-file[Write Prometheus metrics to file]:file:_files' \
                        '1:path:_files -/'
                    ;;
                inspect)
                    _arguments \
                        '--format[Output format]:format:(text json yaml)' \
                        '1:file:_files -g "*.php"' \
                        '2:symbol:'
                    ;;
                init)
                    _arguments \
                        '(-f --force)'{-f,--force}'[Overwrite existing configuration]' \
                        '1:dir:_files -/'
                    ;;
                completion)
                    _arguments \
                        '1:shell:(bash zsh fish)'
                    ;;
            esac
            ;;
    esac
}

_typenames
`

// fishCompletionTemplate is the fish completion script for typenames.
const fishCompletionTemplate = `# Fish completion script for typenames
# Installation:
#   typenames completion fish > ~/.config/fish/completions/typenames.fish

complete -c typenames -f -n "__fish_use_subcommand" -a "scan" -d "List the type names of every declaration under a path"
complete -c typenames -f -n "__fish_use_subcommand" -a "inspect" -d "Show the type names of one declaration"
complete -c typenames -f -n "__fish_use_subcommand" -a "init" -d "Create .typenames.yaml"
complete -c typenames -f -n "__fish_use_subcommand" -a "completion" -d "Generate shell completion script"

complete -c typenames -n "__fish_use_subcommand" -l version -d "Show version and exit"
complete -c typenames -n "__fish_use_subcommand" -l config -d "Path to .typenames.yaml" -r
complete -c typenames -n "__fish_use_subcommand" -l json -d "Output as JSON"
complete -c typenames -n "__fish_use_subcommand" -l no-color -d "Disable colored output"
complete -c typenames -n "__fish_use_subcommand" -s q -l quiet -d "Suppress informational output"
complete -c typenames -n "__fish_use_subcommand" -s v -l verbose -d "Increase log verbosity"

complete -c typenames -n "__fish_seen_subcommand_from scan" -l exclude -d "Glob of paths to skip" -r
complete -c typenames -n "__fish_seen_subcommand_from scan" -l workers -d "Files parsed concurrently" -r
complete -c typenames -n "__fish_seen_subcommand_from scan inspect" -l format -d "Output format" -xa "text json yaml"
complete -c typenames -n "__fish_seen_subcommand_from scan" -l max-file-size -d "Skip larger files" -r
complete -c typenames -n "__fish_seen_subcommand_from scan" -l keep-going -d "Exit successfully when files fail to parse"
complete -c typenames -n "__fish_seen_subcommand_from scan" -l metrics-addr -d "Prometheus metrics address" -r
complete -c typenames -n "__fish_seen_subcommand_from scan" -l metrics-file -d "Write Prometheus metrics to file" -r

complete -c typenames -n "__fish_seen_subcommand_from init" -s f -l force -d "Overwrite existing configuration"

complete -c typenames -n "__fish_seen_subcommand_from completion" -f -a "bash zsh fish"
`

var completionScripts = map[string]string{
	"bash": bashCompletionTemplate,
	"zsh":  zshCompletionTemplate,
	"fish": fishCompletionTemplate,
}

// runCompletion executes the 'completion' command, printing the completion
// script for bash, zsh or fish.
//
// Examples:
//
//	source <(typenames completion bash)
//	typenames completion zsh > "${fpath[1]}/_typenames"
//	typenames completion fish | source
func runCompletion(args []string, _ GlobalFlags, stdout io.Writer, _ *slog.Logger) error {
	fs := flag.NewFlagSet("completion", flag.ContinueOnError)

	fs.Usage = func() {
		fmt.Fprintf(os.Stderr, `Usage: typenames completion <shell>

Generates a completion script for bash, zsh or fish.

Examples:
  source <(typenames completion bash)
  typenames completion zsh > "${fpath[1]}/_typenames"
  typenames completion fish > ~/.config/fish/completions/typenames.fish
`)
	}

	if err := parseFlags(fs, args); err != nil {
		return err
	}
	if fs.NArg() != 1 {
		return errors.NewInputError(
			"Invalid arguments",
			"The completion command requires exactly one argument: the shell name",
			"Run 'typenames completion bash', 'typenames completion zsh', or 'typenames completion fish'",
		)
	}

	script, ok := completionScripts[fs.Arg(0)]
	if !ok {
		return errors.NewInputError(
			"Unsupported shell",
			fmt.Sprintf("Shell '%s' is not supported. Valid options: bash, zsh, fish", fs.Arg(0)),
			"Run 'typenames completion bash', 'typenames completion zsh', or 'typenames completion fish'",
		)
	}
	_, err := io.WriteString(stdout, script)
	return err
}
