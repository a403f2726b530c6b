package ports_test

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/matchmyvibe/roommate-service/internal/core/ports"
)

func TestExtractedVariableUnmarshalJSON(t *testing.T) {
	tests := []struct {
		name string
		raw  string
		want ports.ExtractedVariable
	}{
		{"string", `{"key":"pets","value":"cat"}`, ports.ExtractedVariable{Key: "pets", Value: "cat"}},
		{"escaped_string", `{"key":"note","value":"a \"quiet\" floor"}`, ports.ExtractedVariable{Key: "note", Value: `a "quiet" floor`}},
		{"bool", `{"key":"smoker","value":false}`, ports.ExtractedVariable{Key: "smoker", Value: "false"}},
		{"number", `{"key":"age","value":21}`, ports.ExtractedVariable{Key: "age", Value: "21"}},
		{"float", `{"key":"budget","value":850.5}`, ports.ExtractedVariable{Key: "budget", Value: "850.5"}},
		{"null", `{"key":"pets","value":null}`, ports.ExtractedVariable{Key: "pets"}},
		{"missing", `{"key":"pets"}`, ports.ExtractedVariable{Key: "pets"}},
		{"array", `{"key":"hobbies","value":[ "chess", "yoga" ]}`, ports.ExtractedVariable{Key: "hobbies", Value: `["chess","yoga"]`}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var got ports.ExtractedVariable
			require.NoError(t, json.Unmarshal([]byte(tt.raw), &got))
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestExtractedVariableUnmarshalJSONRejectsBadKey(t *testing.T) {
	var got ports.ExtractedVariable
	assert.Error(t, json.Unmarshal([]byte(`{"key":7,"value":"x"}`), &got))
}

func TestExtractedVariablesMixedPayload(t *testing.T) {
	var vars []ports.ExtractedVariable
	raw := `[{"key":"lifestyle","value":"social"},{"key":"pets","value":true},{"key":"age","value":21}]`
	require.NoError(t, json.Unmarshal([]byte(raw), &vars))

	assert.Equal(t, []ports.ExtractedVariable{
		{Key: "lifestyle", Value: "social"},
		{Key: "pets", Value: "true"},
		{Key: "age", Value: "21"},
	}, vars)
}
