// Copyright 2025 go-highway Authors
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.


package main

import (
	"log/slog"
	"os"
	"runtime"

	"github.com/spf13/cobra"

	"github.com/ajroetker/go-neighborhood/hwy"
)

// NewCLI returns the nbhdprobe root command.
func NewCLI() *cobra.Command {
	var opts probeOptions
	var verbose bool

	cmd := &cobra.Command{
		Use:           "nbhdprobe IMAGE",
		Short:         "Evaluate a neighborhood operator at points of an image",
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		CompletionOptions: cobra.CompletionOptions{
			DisableDefaultCmd: true,
		},
		PreRun: func(cmd *cobra.Command, args []string) {
			level := slog.LevelInfo
			if verbose {
				level = slog.LevelDebug
			}
			slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level})))
			slog.Debug("cpu", "simd", hwy.CurrentName(), "width", hwy.CurrentWidth())
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return probe(cmd.Context(), cmd.OutOrStdout(), args[0], opts)
		},
	}

	flags := cmd.Flags()
	flags.StringVar(&opts.op, "op", "derivative", "Operator: box, derivative, gaussian, gradient, laplacian, sobel, zucker-hummel")
	flags.IntVar(&opts.axis, "axis", 0, "Axis of directional operators")
	flags.IntVar(&opts.order, "order", 1, "Derivative order (1 or 2)")
	flags.IntVar(&opts.radius, "radius", 1, "Box radius")
	flags.Float64Var(&opts.sigma, "sigma", 1, "Gaussian standard deviation in pixels")
	flags.StringVar(&opts.boundary, "boundary", "zeroflux", "Boundary condition: constant, zeroflux, mirrored, periodic, strict")
	flags.Float64Var(&opts.pad, "pad", 0, "Pad value of the constant boundary")
	flags.StringVar(&opts.policy, "policy", "nearest", "Sub-pixel policy: nearest, blended")
	flags.StringArrayVar(&opts.at, "at", nil, "Location as comma-separated index coordinates (repeatable)")
	flags.IntVar(&opts.jobs, "jobs", runtime.GOMAXPROCS(0), "Maximum concurrent evaluations")
	flags.BoolVarP(&verbose, "verbose", "v", false, "Log debug messages")
	_ = cmd.MarkFlagRequired("at")

	return cmd
}
