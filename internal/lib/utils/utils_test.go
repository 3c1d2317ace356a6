package utils

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPrintJSON(t *testing.T) {
	var buf bytes.Buffer

	err := PrintJSON(&buf, map[string]int{"id": 1})

	require.NoError(t, err)
	assert.Equal(t, "{\n\t\"id\": 1\n}\n", buf.String())
}

func TestPrintJSON_Unsupported(t *testing.T) {
	var buf bytes.Buffer

	err := PrintJSON(&buf, make(chan int))

	assert.Error(t, err)
	assert.Empty(t, buf.String())
}
