package main

import (
	"errors"
	"fmt"
	"os"
	"path"
	"path/filepath"
	"strings"
	"time"

	"github.com/AlecAivazis/survey/v2"
	"github.com/fsnotify/fsnotify"
	"github.com/urfave/cli/v2"
	"go.uber.org/zap"

	"github.com/ptmpl/ptmpl/ptmpl"
)

// errOverwriteDeclined marks a file skipped because the user answered no
// to the overwrite prompt. It is reported but not counted as a failure.
var errOverwriteDeclined = errors.New("overwrite declined")

// outputFileName derives the output path for an input file: the explicit
// path when given, otherwise the input name with its extension replaced by
// .html (or .html appended when there is none).
func outputFileName(inputFileName string, explicit string) string {
	if explicit != "" {
		return explicit
	}
	ext := path.Ext(inputFileName)
	if ext == "" {
		return inputFileName + ".html"
	}
	return strings.TrimSuffix(inputFileName, ext) + ".html"
}

// confirmOverwrite asks the user whether an existing output file may be
// replaced.
func confirmOverwrite(outputFileName string) (bool, error) {
	ok := false
	prompt := &survey.Confirm{
		Message: fmt.Sprintf("File %q already exists. Overwrite?", outputFileName),
	}
	if err := survey.AskOne(prompt, &ok); err != nil {
		return false, err
	}
	return ok, nil
}

// processFile converts one input file and writes the result. A negative
// answer to the overwrite prompt returns errOverwriteDeclined; every other
// error is a genuine per-file failure.
func processFile(conv *ptmpl.Converter, inputFileName, outputFileName string, dryrun, overwrite bool) error {

	src, err := os.ReadFile(inputFileName)
	if err != nil {
		return fmt.Errorf("reading %s: %w", inputFileName, err)
	}

	html, lang := conv.Convert(string(src))

	if dryrun {
		fmt.Printf("dry run: processed %v (lang %v) without writing output\n", inputFileName, lang)
		return nil
	}

	if !overwrite {
		if _, err := os.Stat(outputFileName); err == nil {
			ok, err := confirmOverwrite(outputFileName)
			if err != nil {
				return err
			}
			if !ok {
				return errOverwriteDeclined
			}
		}
	}

	if err := os.WriteFile(outputFileName, []byte(html), 0664); err != nil {
		return fmt.Errorf("writing %s: %w", outputFileName, err)
	}

	fmt.Printf("generated %v (lang %v)\n", outputFileName, lang)
	return nil
}

// processWatch regenerates the given inputs whenever one of them changes
// on disk. It watches the parent directories, since editors commonly
// replace files instead of writing them in place. Watch mode always
// overwrites its outputs.
func processWatch(conv *ptmpl.Converter, inputs []string, explicitOutput string, sugar *zap.SugaredLogger) error {

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return err
	}
	defer watcher.Close()

	// Map the absolute input paths to their outputs, and watch each
	// distinct parent directory once.
	outputs := make(map[string]string)
	dirs := make(map[string]bool)
	for _, in := range inputs {
		abs, err := filepath.Abs(in)
		if err != nil {
			return err
		}
		outputs[abs] = outputFileName(in, explicitOutput)
		dirs[filepath.Dir(abs)] = true
	}
	for dir := range dirs {
		if err := watcher.Add(dir); err != nil {
			return err
		}
	}

	// Generate everything once before waiting for changes.
	for _, in := range inputs {
		if err := processFile(conv, in, outputFileName(in, explicitOutput), false, true); err != nil {
			sugar.Errorw("processing input file", "file", in, "error", err)
		}
	}

	sugar.Infow("watching for changes", "inputs", len(outputs))

	for {
		select {
		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if event.Op&(fsnotify.Write|fsnotify.Create) == 0 {
				continue
			}
			abs, err := filepath.Abs(event.Name)
			if err != nil {
				continue
			}
			out, watched := outputs[abs]
			if !watched {
				continue
			}

			// Editors often emit a create followed by several writes;
			// give the writer a moment to finish.
			time.Sleep(50 * time.Millisecond)

			fmt.Println("************Processing*************")
			if err := processFile(conv, abs, out, false, true); err != nil {
				sugar.Errorw("processing input file", "file", abs, "error", err)
			}

		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			sugar.Errorw("watcher error", "error", err)
		}
	}
}

// process is the main entry point of the program.
func process(c *cli.Context) error {

	debug := c.Bool("debug")

	// Setup the logging system
	var z *zap.Logger
	var err error
	if debug {
		z, err = zap.NewDevelopment()
	} else {
		z, err = zap.NewProduction()
	}
	if err != nil {
		panic(err)
	}
	sugar := z.Sugar()
	defer sugar.Sync()

	inputs := c.Args().Slice()
	if len(inputs) == 0 {
		return cli.Exit("no input file provided", 1)
	}

	explicitOutput := c.String("output")
	if explicitOutput != "" && len(inputs) > 1 {
		return cli.Exit("--output cannot be combined with multiple input files", 1)
	}

	conv := &ptmpl.Converter{
		Logger:         sugar,
		HighlightStyle: c.String("style"),
	}

	if c.Bool("watch") {
		return processWatch(conv, inputs, explicitOutput, sugar)
	}

	// Process every input, reporting per-file errors without aborting
	// the remaining files.
	failures := 0
	for _, in := range inputs {
		out := outputFileName(in, explicitOutput)

		err := processFile(conv, in, out, c.Bool("dryrun"), c.Bool("yes"))
		switch {
		case errors.Is(err, errOverwriteDeclined):
			fmt.Printf("skipping file %v\n", out)
		case err != nil:
			sugar.Errorw("processing input file", "file", in, "error", err)
			failures++
		}
	}

	if failures > 0 {
		return cli.Exit(fmt.Sprintf("%d file(s) failed", failures), 1)
	}
	return nil
}

func main() {

	app := &cli.App{
		Name:      "ptmpl",
		Version:   "v0.1.0",
		Compiled:  time.Now(),
		Usage:     "convert prompt-template markup into an interactive HTML page",
		UsageText: "ptmpl [options] INPUT_FILE...",
		Action:    process,
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "output",
				Aliases: []string{"o"},
				Usage:   "write html to `FILE` (default is input file name with extension .html)",
			},
			&cli.BoolFlag{
				Name:    "dryrun",
				Aliases: []string{"n"},
				Usage:   "do not generate output file, just process input file",
			},
			&cli.BoolFlag{
				Name:    "yes",
				Aliases: []string{"y"},
				Usage:   "overwrite existing output files without asking",
			},
			&cli.BoolFlag{
				Name:    "debug",
				Aliases: []string{"d"},
				Usage:   "run in debug mode",
			},
			&cli.BoolFlag{
				Name:    "watch",
				Aliases: []string{"w"},
				Usage:   "watch the input files for changes",
			},
			&cli.StringFlag{
				Name:    "style",
				Aliases: []string{"s"},
				Usage:   "chroma `STYLE` for highlighting block verbatim content",
			},
		},
	}

	if err := app.Run(os.Args); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
