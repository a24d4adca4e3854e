package diagnostic

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDiagnostics(t *testing.T) {
	var d Diagnostics
	assert.True(t, d.IsValid())
	assert.NoError(t, d.Error())

	d.AddInfo("collection_empty", "collection has no keys", "Empty", "")
	d.AddWarning("key_unaddressable", "key contains a dot", "Tests", "a.b")
	d.AddError("reference_broken", "collection not found", "Tests", "Common.password2")

	assert.False(t, d.IsValid())
	assert.True(t, d.HasErrors())

	all := d.All()
	require.Len(t, all, 3)
	assert.Equal(t, DiagnosticError, all[0].Severity)
	assert.Equal(t, DiagnosticInfo, all[2].Severity)

	assert.EqualError(t, d.Error(), "[Tests] Common.password2: [reference_broken] collection not found")

	var other Diagnostics
	other.AddError("x", "second", "", "")
	d.Merge(other)
	assert.EqualError(t, d.Error(), "[Tests] Common.password2: [reference_broken] collection not found; [x] second")
}

func TestDiagnosticString(t *testing.T) {
	d := Diagnostic{
		Code:        "field_not_found",
		Message:     "no such field",
		Collection:  "DataBlocks",
		FieldPath:   "Common.pasword",
		Suggestions: []string{"password"},
	}
	assert.Equal(t, "[DataBlocks] Common.pasword: [field_not_found] no such field (did you mean password?)", d.String())

	assert.Equal(t, "plain", Diagnostic{Message: "plain"}.String())
}

func TestSeverityString(t *testing.T) {
	assert.Equal(t, "info", DiagnosticInfo.String())
	assert.Equal(t, "warning", DiagnosticWarning.String())
	assert.Equal(t, "error", DiagnosticError.String())
	assert.Equal(t, "unknown", DiagnosticSeverity(7).String())
}
