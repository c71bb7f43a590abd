package telemetry

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseIndexed(t *testing.T) {
	values := map[string]string{
		"Sensor10":  "GPU",
		"Label10":   "GPU Temp",
		"Value10":   "61 °C",
		"Sensor2":   "CPU",
		"Label2":    "CPU Package",
		"Value2":    "48 °C",
		"ValueRaw2": "48.1",
		"Color2":    "ff0000",
		"Label0":    "Fan",
		"nodigits":  "x",
		"99Leading": "x",
	}

	got := ParseIndexed(values)
	require.Len(t, got, 3)

	assert.Equal(t, Metric{ID: 0, Label: "Fan"}, got[0])
	assert.Equal(t, Metric{ID: 2, Label: "CPU Package", Value: "48 °C", Group: "CPU"}, got[1])
	assert.Equal(t, Metric{ID: 10, Label: "GPU Temp", Value: "61 °C", Group: "GPU"}, got[2])
}

func TestParseIndexed_Empty(t *testing.T) {
	got := ParseIndexed(nil)
	assert.NotNil(t, got)
	assert.Empty(t, got)
}

func TestReadIndexed(t *testing.T) {
	dump := "\ufeffWindows Registry Editor Version 5.00\n" +
		"\n" +
		"[HKEY_CURRENT_USER\\Software\\HWiNFO64\\VSB]\n" +
		"\"Sensor0\"=\"CPU [#0]\"\n" +
		"\"Label0\"=\"Core Temp\"\n" +
		"\"Value0\"=\"50 °C\"\n" +
		"# comment\n" +
		"; another\n" +
		"Label1 = Fan Speed\n" +
		"Value1=900 RPM\n" +
		"Value2=a=b\n"

	values, err := ReadIndexed(strings.NewReader(dump))
	require.NoError(t, err)

	assert.Equal(t, map[string]string{
		"Sensor0": "CPU [#0]",
		"Label0":  "Core Temp",
		"Value0":  "50 °C",
		"Label1":  "Fan Speed",
		"Value1":  "900 RPM",
		"Value2":  "a=b",
	}, values)

	metrics := ParseIndexed(values)
	require.Len(t, metrics, 3)
	assert.Equal(t, "Core Temp", metrics[0].Label)
	assert.Equal(t, "Fan Speed", metrics[1].Label)
	assert.False(t, metrics[2].HasLabel())
}
