// SPDX-License-Identifier: Apache-2.0

package mocks

type Bar struct {
	AddFn   func(int) error
	CloseFn func() error
}

func (m *Bar) Add(i int) error {
	return m.AddFn(i)
}

func (m *Bar) Close() error {
	return m.CloseFn()
}
