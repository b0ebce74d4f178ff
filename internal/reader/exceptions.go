// SPDX-FileCopyrightText: 2026 api2spec
// SPDX-License-Identifier: FSL-1.1-MIT

package reader

import (
	"github.com/littlefisher666/swagger-docgen/internal/descriptor"
	"github.com/littlefisher666/swagger-docgen/internal/logging"
	"github.com/littlefisher666/swagger-docgen/pkg/types"
)

// ExceptionTable maps exception types to the status an exception-advice
// handler responds with.
type ExceptionTable struct {
	index    *descriptor.Index
	statuses map[string]types.StatusMarker
}

// NewExceptionTable builds the table from every controller-advice type in
// index. Handler methods without a status marker are ignored.
func NewExceptionTable(index *descriptor.Index, logger logging.Logger) *ExceptionTable {
	if logger == nil {
		logger = logging.NopLogger{}
	}

	table := &ExceptionTable{
		index:    index,
		statuses: make(map[string]types.StatusMarker),
	}
	for _, t := range index.Types() {
		if !t.Markers.ControllerAdvice {
			continue
		}
		for i := range t.Methods {
			m := &t.Methods[i]
			if len(m.ExceptionHandler) == 0 {
				continue
			}
			if m.ResponseStatus == nil {
				logger.Debug("exception handler without response status, skipping", "type", t.Name, "method", m.Name)
				continue
			}
			for _, exc := range m.ExceptionHandler {
				table.statuses[table.canonical(exc)] = *m.ResponseStatus
			}
		}
	}
	return table
}

// Len returns the number of mapped exception types.
func (e *ExceptionTable) Len() int {
	return len(e.statuses)
}

// Status returns the status for an exception type: the advice table entry,
// else the status marker of the type or its nearest supertype.
func (e *ExceptionTable) Status(exception string) (types.StatusMarker, bool) {
	name := e.canonical(exception)
	if s, ok := e.statuses[name]; ok {
		return s, true
	}

	decl, ok := e.index.Lookup(name)
	if !ok {
		return types.StatusMarker{}, false
	}
	if decl.Markers.ResponseStatus != nil {
		return *decl.Markers.ResponseStatus, true
	}
	for _, s := range e.index.Supertypes(decl) {
		if s.Markers.ResponseStatus != nil {
			return *s.Markers.ResponseStatus, true
		}
	}
	return types.StatusMarker{}, false
}

// canonical returns the qualified name of an indexed type, or name as given.
func (e *ExceptionTable) canonical(name string) string {
	if decl, ok := e.index.Lookup(name); ok {
		return decl.Name
	}
	return name
}
