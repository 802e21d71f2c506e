/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

package main

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"beadgrid/internal/config"
	"beadgrid/internal/crash"
	"beadgrid/internal/editor"
	"beadgrid/internal/export"
	applog "beadgrid/internal/log"
	"beadgrid/internal/ui"
	"beadgrid/internal/version"
)

// errUsage marks bad invocations; main prints usage and exits 2.
var errUsage = errors.New("usage")

func usage(w io.Writer) {
	_, _ = fmt.Fprintln(w, "Lipid bead grid editor")
	_, _ = fmt.Fprintf(w, "Version: %s\n", version.String())
	_, _ = fmt.Fprintln(w)
	_, _ = fmt.Fprintln(w, "Usage:")
	_, _ = fmt.Fprintln(w, "  beadgrid version|-v|--version           Show version")
	_, _ = fmt.Fprintln(w, "  beadgrid example [insane|coby]          Print the POPC example grid")
	_, _ = fmt.Fprintln(w, "  beadgrid preview <out.png|out.svg>      Render the example as an image")
	_, _ = fmt.Fprintln(w, "  beadgrid sheet <out.pdf> [insane|coby]  Write a PDF sheet with plot and output")
	_, _ = fmt.Fprintln(w, "  beadgrid ui                             Launch desktop UI (build with -tags fyne)")
}

func main() {
	cfg, cfgErr := config.Load()
	applog.Init(applog.FromConfig(cfg.Logging))
	l := applog.WithComponent("cli")
	if cfgErr != nil {
		// defaults are still usable
		l.Warn("config not loaded, using defaults", slog.Any("err", cfgErr))
		cfg = config.Defaults()
	}

	l.Debug("start", slog.Int("args", len(os.Args)))
	err := run(os.Args[1:], cfg, os.Stdout)
	if err != nil && !errors.Is(err, errUsage) {
		l.Error("command failed", slog.Any("err", err))
	}
	if cerr := applog.Close(); cerr != nil {
		_, _ = fmt.Fprintln(os.Stderr, "close log file:", cerr)
	}
	if err != nil {
		if errors.Is(err, errUsage) {
			_, _ = fmt.Fprintln(os.Stderr, err)
			usage(os.Stderr)
			os.Exit(2)
		}
		_, _ = fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}

func run(args []string, cfg config.AppConfig, stdout io.Writer) error {
	if len(args) == 0 {
		usage(stdout)
		return nil
	}
	if args[0] == "ui" {
		return ui.Run(cfg.Editor)
	}

	sess := editor.NewSession(cfg.Editor)
	defer crash.Recover(sess)

	switch args[0] {
	case "version", "--version", "-v":
		_, err := fmt.Fprintln(stdout, version.String())
		return err
	case "example":
		mode := sess.Mode()
		if len(args) >= 2 {
			m, err := export.ParseMode(args[1])
			if err != nil {
				return fmt.Errorf("%w: %v", errUsage, err)
			}
			mode = m
		}
		sess.LoadExample()
		_, err := fmt.Fprintln(stdout, strings.TrimRight(sess.RequestOutput(sess.Resname(), mode), "\n"))
		return err
	case "preview":
		if len(args) < 2 {
			return fmt.Errorf("%w: preview requires <out.png|out.svg>", errUsage)
		}
		sess.LoadExample()
		opt := export.PreviewOptions{Plane: sess.Plane(), Guides: true, Title: sess.Resname()}
		return writeFile(args[1], func(w io.Writer) error {
			if strings.EqualFold(filepath.Ext(args[1]), ".svg") {
				return export.RenderSVG(w, sess.Beads(), opt)
			}
			return export.RenderPNG(w, sess.Beads(), opt)
		})
	case "sheet":
		if len(args) < 2 {
			return fmt.Errorf("%w: sheet requires <out.pdf>", errUsage)
		}
		mode := sess.Mode()
		if len(args) >= 3 {
			m, err := export.ParseMode(args[2])
			if err != nil {
				return fmt.Errorf("%w: %v", errUsage, err)
			}
			mode = m
		}
		sess.LoadExample()
		opt := export.PreviewOptions{
			Plane:   sess.Plane(),
			Guides:  true,
			Request: export.Request{Resname: sess.Resname(), Mode: mode},
		}
		return writeFile(args[1], func(w io.Writer) error {
			return export.RenderPDF(w, sess.Beads(), opt)
		})
	}
	return fmt.Errorf("%w: unknown command %q", errUsage, args[0])
}

func writeFile(path string, render func(io.Writer) error) (err error) {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer func() {
		if cerr := f.Close(); cerr != nil && err == nil {
			err = cerr
		}
	}()
	if err := render(f); err != nil {
		return err
	}
	applog.WithComponent("cli").Info("wrote file", slog.String("path", path))
	return nil
}
