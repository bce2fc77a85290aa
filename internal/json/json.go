// SPDX-License-Identifier: Apache-2.0

package json

import (
	json "github.com/bytedance/sonic"
)

func Unmarshal(b []byte, v any) error {
	return json.Unmarshal(b, v)
}

func Marshal(v any) ([]byte, error) {
	return json.Marshal(v)
}

// MarshalIndent is used for human readable output (schema debug dumps and CLI
// reports).
func MarshalIndent(v any) ([]byte, error) {
	return json.ConfigStd.MarshalIndent(v, "", "  ")
}
