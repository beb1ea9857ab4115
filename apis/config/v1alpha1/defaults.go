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
	"k8s.io/utils/ptr"
)

var (
	defaultKeepDominated     = false
	defaultObjectiveSense    = ObjectiveSenseMinimize
	defaultEqualityTolerance = 0.0
	defaultParallelism       = int32(1)
)

// SetDefaults_ConversionArgs sets the default parameters for ConversionArgs.
// Alpha is left unset, meaning no deletion limit.
func SetDefaults_ConversionArgs(obj *ConversionArgs) {
	if obj.APIVersion == "" {
		obj.APIVersion = SchemeGroupVersion.String()
	}
	if obj.Kind == "" {
		obj.Kind = ConversionArgsKind
	}
	if obj.KeepDominated == nil {
		obj.KeepDominated = ptr.To(defaultKeepDominated)
	}
	if obj.ObjectiveSense == "" {
		obj.ObjectiveSense = defaultObjectiveSense
	}
	if obj.EqualityTolerance == nil {
		obj.EqualityTolerance = ptr.To(defaultEqualityTolerance)
	}
	if obj.Parallelism == nil {
		obj.Parallelism = ptr.To(defaultParallelism)
	}
}
