/*
Copyright 2024 The Kubernetes Authors.

Licensed under the Apache License, Version 2.0 (the "License");
you may not use this file except in compliance with the License.
You may obtain a copy of the License at

    http://www.apache.org/licenses/LICENSE-2.0

Unless required by applicable law or agreed to in writing, software
distributed under the License is distributed on an "AS IS" BASIS,
WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
See the License for the specific language governing permissions and
limitations under the License.
*/

package v1alpha1

import (
	metav1 "k8s.io/apimachinery/pkg/apis/meta/v1"
)

const (
	// GroupName is the group name used for popconv configuration files.
	GroupName = "popconv.modcell.io"
	// Version is the API version of the types in this package.
	Version = "v1alpha1"
	// ConversionArgsKind is the kind of ConversionArgs.
	ConversionArgsKind = "ConversionArgs"
)

// SchemeGroupVersion is the group version of ConversionArgs.
var SchemeGroupVersion = metav1.GroupVersion{Group: GroupName, Version: Version}

// ConversionArgs holds the arguments used to convert and filter populations.
// Fields can be set from a configuration file, from POPCONV_* environment
// variables, or from command line flags, in increasing order of precedence.
type ConversionArgs struct {
	metav1.TypeMeta `json:",inline"`

	// ProblemPath is the directory holding modelidmap.csv and rxnidmap.csv.
	ProblemPath string `json:"problemPath,omitempty" env:"PROBLEM_PATH"`

	// Alpha is the maximum number of deletions of a retained design.
	// Unset means no limit.
	Alpha *int32 `json:"alpha,omitempty" env:"ALPHA"`

	// KeepDominated disables the dominance filter.
	KeepDominated *bool `json:"keepDominated,omitempty" env:"KEEP_DOMINATED"`

	// ObjectiveSense tells whether objective values are minimized or maximized.
	// +kubebuilder:validation:Enum=Minimize;Maximize
	ObjectiveSense ObjectiveSense `json:"objectiveSense,omitempty" env:"OBJECTIVE_SENSE"`

	// EqualityTolerance is the per-objective difference under which two
	// designs are considered equal by the dominance filter.
	EqualityTolerance *float64 `json:"equalityTolerance,omitempty" env:"EQUALITY_TOLERANCE"`

	// Parallelism is the number of goroutines used by the dominance filter.
	Parallelism *int32 `json:"parallelism,omitempty" env:"PARALLELISM"`

	// PlotObjectives names the two models whose objectives are plotted
	// against each other. Empty disables plotting.
	PlotObjectives []string `json:"plotObjectives,omitempty" env:"PLOT_OBJECTIVES"`

	// MetricsFile, when set, receives the filter counters in the Prometheus
	// text format.
	MetricsFile string `json:"metricsFile,omitempty" env:"METRICS_FILE"`
}

// ObjectiveSense represents how objective values are compared.
type ObjectiveSense string

const (
	// ObjectiveSenseMinimize treats lower objective values as better.
	ObjectiveSenseMinimize ObjectiveSense = "Minimize"

	// ObjectiveSenseMaximize treats higher objective values as better.
	ObjectiveSenseMaximize ObjectiveSense = "Maximize"
)
