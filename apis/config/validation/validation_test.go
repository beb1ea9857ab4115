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
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"k8s.io/utils/ptr"

	"modcell.io/popio/apis/config/v1alpha1"
)

func TestValidateConversionArgs(t *testing.T) {
	tests := []struct {
		name    string
		args    *v1alpha1.ConversionArgs
		wantErr string
	}{
		{
			name: "valid",
			args: &v1alpha1.ConversionArgs{ProblemPath: "problems/ecoli", Alpha: ptr.To[int32](5)},
		},
		{
			name:    "missing problem path",
			args:    &v1alpha1.ConversionArgs{},
			wantErr: "problemPath: Required value",
		},
		{
			name:    "zero alpha",
			args:    &v1alpha1.ConversionArgs{ProblemPath: "p", Alpha: ptr.To[int32](0)},
			wantErr: "alpha: Invalid value: 0: must be a positive integer",
		},
		{
			name:    "unknown sense",
			args:    &v1alpha1.ConversionArgs{ProblemPath: "p", ObjectiveSense: "Sideways"},
			wantErr: `objectiveSense: Unsupported value: "Sideways"`,
		},
		{
			name:    "NaN tolerance",
			args:    &v1alpha1.ConversionArgs{ProblemPath: "p", EqualityTolerance: ptr.To(math.NaN())},
			wantErr: "equalityTolerance: Invalid value",
		},
		{
			name:    "no workers",
			args:    &v1alpha1.ConversionArgs{ProblemPath: "p", Parallelism: ptr.To[int32](0)},
			wantErr: "parallelism: Invalid value: 0: must be at least 1",
		},
		{
			name:    "one plot objective",
			args:    &v1alpha1.ConversionArgs{ProblemPath: "p", PlotObjectives: []string{"a"}},
			wantErr: "plotObjectives: Invalid value",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			v1alpha1.SetDefaults_ConversionArgs(tt.args)
			err := ValidateConversionArgs(tt.args)
			if tt.wantErr == "" {
				assert.NoError(t, err)
				return
			}
			assert.ErrorContains(t, err, tt.wantErr)
		})
	}
}
