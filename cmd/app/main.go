package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	gcode "github.com/iwtcode/gcodeAdapter"
	"github.com/iwtcode/gcodeAdapter/models"
	"gopkg.in/yaml.v3"
)

func main() {
	if err := run(os.Args[1:], os.Stdout); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
}

// run генерирует или читает программу, обрабатывает ее для системы ЧПУ
// и пишет результат в out (или в файл -out)
func run(args []string, stdout io.Writer) error {
	fs := flag.NewFlagSet("gcode", flag.ContinueOnError)
	fs.SetOutput(stdout)
	toolpathPath := fs.String("toolpath", "", "toolpath file (.json, .yaml) to generate a program from")
	inPath := fs.String("in", "", "G-code file to post-process")
	outPath := fs.String("out", "", "output file (default: stdout)")
	controller := fs.String("controller", "", "target controller: fanuc, haas, heidenhain, siemens, mazak, okuma, generic")
	report := fs.Bool("report", false, "print the full post-processing result as JSON")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if (*toolpathPath == "") == (*inPath == "") {
		return fmt.Errorf("exactly one of -toolpath or -in is required")
	}

	cfg := gcode.Load()
	if *controller != "" {
		cfg.DefaultController = *controller
	}
	client, err := gcode.New(cfg)
	if err != nil {
		return err
	}
	defer client.Close()

	var code string
	if *toolpathPath != "" {
		tp, err := readToolpath(*toolpathPath)
		if err != nil {
			return err
		}
		code, err = client.GenerateGcode(tp, models.GenerationParams{})
		if err != nil {
			return err
		}
	} else {
		data, err := os.ReadFile(*inPath)
		if err != nil {
			return fmt.Errorf("read %s: %w", *inPath, err)
		}
		code = string(data)
	}

	res := client.ProcessGCode(code, "", nil)
	for _, w := range res.Stats.MajorWarnings {
		client.GetLogger().Warn(w)
	}

	output := res.Code + "\n"
	if *report {
		data, err := json.MarshalIndent(res, "", "  ")
		if err != nil {
			return fmt.Errorf("marshal result: %w", err)
		}
		output = string(data) + "\n"
	}

	if *outPath == "" {
		_, err = io.WriteString(stdout, output)
		return err
	}
	if err := os.WriteFile(*outPath, []byte(output), 0644); err != nil {
		return fmt.Errorf("write %s: %w", *outPath, err)
	}
	return nil
}

// readToolpath читает траекторию из JSON или YAML
func readToolpath(path string) (models.Toolpath, error) {
	var tp models.Toolpath
	data, err := os.ReadFile(path)
	if err != nil {
		return tp, fmt.Errorf("read %s: %w", path, err)
	}
	if strings.EqualFold(filepath.Ext(path), ".json") {
		err = json.Unmarshal(data, &tp)
	} else {
		err = yaml.Unmarshal(data, &tp)
	}
	if err != nil {
		return tp, fmt.Errorf("decode toolpath %s: %w", path, err)
	}
	return tp, nil
}
