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

package validation

import (
	"k8s.io/apimachinery/pkg/util/validation/field"

	"modcell.io/popio/apis/config/v1alpha1"
)

var validSenses = []string{
	string(v1alpha1.ObjectiveSenseMinimize),
	string(v1alpha1.ObjectiveSenseMaximize),
}

// ValidateConversionArgs validates defaulted ConversionArgs.
func ValidateConversionArgs(args *v1alpha1.ConversionArgs) error {
	var allErrs field.ErrorList

	if args.ProblemPath == "" {
		allErrs = append(allErrs, field.Required(field.NewPath("problemPath"), ""))
	}
	if args.Alpha != nil && *args.Alpha < 1 {
		allErrs = append(allErrs, field.Invalid(field.NewPath("alpha"), *args.Alpha, "must be a positive integer"))
	}
	switch args.ObjectiveSense {
	case v1alpha1.ObjectiveSenseMinimize, v1alpha1.ObjectiveSenseMaximize:
	default:
		allErrs = append(allErrs, field.NotSupported(field.NewPath("objectiveSense"), args.ObjectiveSense, validSenses))
	}
	if args.EqualityTolerance != nil && !(*args.EqualityTolerance >= 0) {
		allErrs = append(allErrs, field.Invalid(field.NewPath("equalityTolerance"), *args.EqualityTolerance, "must be a non-negative number"))
	}
	if args.Parallelism != nil && *args.Parallelism < 1 {
		allErrs = append(allErrs, field.Invalid(field.NewPath("parallelism"), *args.Parallelism, "must be at least 1"))
	}
	if n := len(args.PlotObjectives); n != 0 && n != 2 {
		allErrs = append(allErrs, field.Invalid(field.NewPath("plotObjectives"), args.PlotObjectives, "must name exactly two models"))
	}

	return allErrs.ToAggregate()
}
