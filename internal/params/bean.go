// SPDX-FileCopyrightText: 2026 api2spec
// SPDX-License-Identifier: FSL-1.1-MIT

package params

import (
	"github.com/littlefisher666/swagger-docgen/pkg/types"
)

// BeanExtension expands composite parameters carrying a bean or model
// marker into the parameters of their members. A type already being
// expanded ends the chain with no parameters.
func BeanExtension(r *Resolver, in Input) ([]*types.Parameter, bool) {
	_, bean := in.Marker(types.MarkerBean)
	_, model := in.Marker(types.MarkerModel)
	if !bean && !model {
		return nil, false
	}
	if in.Skip.Has(r.Key(in.Type)) {
		return nil, true
	}
	return r.Expand(in.Type, in.Skip), true
}

// DefaultChain is the extension chain used when none is configured.
func DefaultChain() []Extension {
	return []Extension{SpringExtension, BeanExtension}
}
