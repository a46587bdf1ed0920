package model

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFlexString_AcceptsNumbersAndStrings(t *testing.T) {
	var c OpportunityCategory
	err := json.Unmarshal([]byte(`{"name":"Shorts","potential_traffic":125000,"difficulty":"low","keywords":["a"],"percentage":40}`), &c)
	require.NoError(t, err)
	assert.Equal(t, FlexString("125000"), c.PotentialTraffic)

	err = json.Unmarshal([]byte(`{"name":"Shorts","potential_traffic":"10k-20k"}`), &c)
	require.NoError(t, err)
	assert.Equal(t, FlexString("10k-20k"), c.PotentialTraffic)

	err = json.Unmarshal([]byte(`{"potential_traffic":{"min":1}}`), &c)
	assert.Error(t, err)
}

func TestCompose_JSONFieldNames(t *testing.T) {
	at := time.Date(2026, 10, 16, 8, 30, 0, 0, time.FixedZone("CST", 8*3600))
	report := Compose(Sections{
		Overview:  Overview{Status: "good", Score: 70},
		ICEMatrix: []ICETask{{Task: "Optimize titles"}},
	}, at)

	data, err := json.Marshal(report)
	require.NoError(t, err)

	var m map[string]json.RawMessage
	require.NoError(t, json.Unmarshal(data, &m))
	for _, name := range AllSections {
		assert.Contains(t, m, string(name))
	}
	assert.JSONEq(t, `"2026-10-16T00:30:00Z"`, string(m["generated_at"]))
}
