package main

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/specterops/countdown/expr"
	"github.com/specterops/countdown/parse"
	"github.com/specterops/countdown/search"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"
)

const (
	defaultShowLimit = 100
	progressInterval = 10 * time.Second
)

type options struct {
	numbers    string
	target     string
	modulus    string
	operators  string
	configPath string
	show       int
	max        uint64
	verbose    bool
}

func newRootCommand(stdin io.Reader, stdout, stderr io.Writer) *cobra.Command {
	var (
		opts    = options{}
		command = &cobra.Command{
			Use:   "countdown",
			Short: "Find every arithmetic expression over a set of numbers that reaches a target",
			Long: `countdown searches every ordered selection of the source numbers and every way of combining them
with the allowed operators for expressions whose value equals the target. Arithmetic is ordinary
positive integer arithmetic, or arithmetic modulo --modulus when it is non-zero.

Inputs not given by flags or by --config are asked for on stderr. An empty answer to the modulus
or operators question keeps ordinary arithmetic or all four operators.`,
			Args:          cobra.NoArgs,
			SilenceUsage:  true,
			SilenceErrors: true,
		}
	)

	flags := command.Flags()
	flags.StringVarP(&opts.numbers, "numbers", "n", "", `source numbers, for example "[25, 50, 75, 100, 3, 6]"`)
	flags.StringVarP(&opts.target, "target", "t", "", "target number")
	flags.StringVarP(&opts.modulus, "modulus", "m", "", "modulus; 0 selects ordinary arithmetic")
	flags.StringVarP(&opts.operators, "operators", "o", "", `allowed operators as symbols or names, for example "+ - * /" or "add mul"`)
	flags.StringVarP(&opts.configPath, "config", "c", "", "YAML file providing any of the search settings")
	flags.IntVar(&opts.show, "show", defaultShowLimit, "number of expressions to print")
	flags.Uint64Var(&opts.max, "max", 0, "stop the search after this many expressions; 0 finds them all")
	flags.BoolVarP(&opts.verbose, "verbose", "v", false, "log search progress and measurements")

	command.RunE = func(cmd *cobra.Command, args []string) error {
		configureLogging(opts.verbose)

		config, err := buildConfig(cmd, opts, newPrompter(stdin, stderr))
		if err != nil {
			return err
		}

		return run(cmd.Context(), config, reportOptions{
			out:   stdout,
			err:   stderr,
			show:  opts.show,
			limit: opts.max,
		})
	}

	return command
}

// buildConfig layers the search settings: the config file first, then any flag the user set, then interactive
// prompts for whatever is still missing.
func buildConfig(cmd *cobra.Command, opts options, input *prompter) (search.Config[uint64], error) {
	var (
		config = search.Config[uint64]{
			Operators: expr.AllOperators,
		}
		flags        = cmd.Flags()
		targetSet    = false
		modulusSet   = false
		operatorsSet = false
	)

	if opts.configPath != "" {
		content, err := os.ReadFile(opts.configPath)
		if err != nil {
			return config, fmt.Errorf("reading config file: %w", err)
		}

		if err := yaml.Unmarshal(content, &config); err != nil {
			return config, fmt.Errorf("parsing config file %s: %w", opts.configPath, err)
		}

		// Zero values are legal settings, so presence is checked on the document rather than the value
		var fields map[string]any

		if err := yaml.Unmarshal(content, &fields); err == nil {
			_, targetSet = fields["target"]
			_, modulusSet = fields["modulus"]
			_, operatorsSet = fields["operators"]
		}
	}

	if flags.Changed("numbers") {
		numbers, err := parse.Numbers[uint64](opts.numbers)
		if err != nil {
			return config, fmt.Errorf("numbers: %w", err)
		}

		config.Numbers = numbers
	}

	if flags.Changed("target") {
		target, err := parse.Number[uint64](opts.target)
		if err != nil {
			return config, fmt.Errorf("target: %w", err)
		}

		config.Target = target
		targetSet = true
	}

	if flags.Changed("modulus") {
		modulus, err := parse.Number[uint64](opts.modulus)
		if err != nil {
			return config, fmt.Errorf("modulus: %w", err)
		}

		config.Modulus = modulus
		modulusSet = true
	}

	if flags.Changed("operators") {
		operators, err := parse.Operators(opts.operators)
		if err != nil {
			return config, fmt.Errorf("operators: %w", err)
		}

		config.Operators = operators
		operatorsSet = true
	}

	if len(config.Numbers) == 0 {
		numbers, err := ask(input, "Please enter the source numbers", parse.Numbers[uint64])
		if err != nil {
			return config, err
		}

		config.Numbers = numbers
	}

	if !targetSet {
		target, err := ask(input, "Please enter the target number", parse.Number[uint64])
		if err != nil {
			return config, err
		}

		config.Target = target
	}

	if !modulusSet {
		modulus, err := askOrDefault(input, "Please enter the modulus", parse.Number[uint64], 0)
		if err != nil {
			return config, err
		}

		config.Modulus = modulus
	}

	if !operatorsSet {
		operators, err := askOrDefault(input, "Please enter the allowed operators", parse.Operators, expr.AllOperators)
		if err != nil {
			return config, err
		}

		config.Operators = operators
	}

	return config, config.Validate()
}

type prompter struct {
	in  *bufio.Reader
	out io.Writer
}

func newPrompter(in io.Reader, out io.Writer) *prompter {
	return &prompter{
		in:  bufio.NewReader(in),
		out: out,
	}
}

func (s *prompter) readLine(question string) (string, error) {
	if _, err := fmt.Fprintf(s.out, "%s: ", question); err != nil {
		return "", err
	}

	line, err := s.in.ReadString('\n')

	if err == io.EOF && line != "" {
		return line, nil
	}

	return line, err
}

func ask[T any](input *prompter, question string, parser func(line string) (T, error)) (T, error) {
	var empty T

	line, err := input.readLine(question)
	if err != nil {
		return empty, fmt.Errorf("reading answer to %q: %w", question, err)
	}

	value, err := parser(line)
	if err != nil {
		return empty, fmt.Errorf("%s: %w", question, err)
	}

	return value, nil
}

// askOrDefault is ask for an optional setting. A blank answer or an exhausted input selects fallback.
func askOrDefault[T any](input *prompter, question string, parser func(line string) (T, error), fallback T) (T, error) {
	line, err := input.readLine(question)

	if err == io.EOF || (err == nil && strings.TrimSpace(line) == "") {
		return fallback, nil
	} else if err != nil {
		return fallback, fmt.Errorf("reading answer to %q: %w", question, err)
	}

	value, err := parser(line)
	if err != nil {
		return fallback, fmt.Errorf("%s: %w", question, err)
	}

	return value, nil
}
