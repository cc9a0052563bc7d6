// Copyright 2015 Dorival Pedroso and Raul Durand. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package inp

import "github.com/cpmech/gosl/io"

// ConfigError reports invalid job parameters or run data
//  Note: returned at job construction time, before any solver is launched
type ConfigError struct {
	Field string // offending parameter
	Value string // offending value
	Msg   string // description
}

func (o *ConfigError) Error() string {
	return io.Sf("configuration error: %s=%q: %s", o.Field, o.Value, o.Msg)
}
