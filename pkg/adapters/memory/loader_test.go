package memory_test

import (
	"context"
	"testing"

	"github.com/aretw0/strumyk/internal/compiler"
	"github.com/aretw0/strumyk/pkg/adapters/memory"
	"github.com/aretw0/strumyk/pkg/dsl"
	contract "github.com/aretw0/strumyk/pkg/ports/tests"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemoryLoader_Contract(t *testing.T) {
	data := map[string]string{
		"linear": "places: [{id: p1}]\ntransitions: []\n",
		"empty":  "{}",
	}

	bytesData := make(map[string][]byte)
	for k, v := range data {
		bytesData[k] = []byte(v)
	}

	contract.NetLoaderContractTest(t, memory.NewLoader(data), bytesData)
}

func TestMemoryLoader_FromDocuments(t *testing.T) {
	doc := dsl.New("approval").
		Places("p_start", "p_end").
		Transition("t").From("p_start").To("p_end").When("ok").
		Document()

	loader, err := memory.NewFromDocuments(doc)
	require.NoError(t, err)

	raw, err := loader.Get(context.Background(), "approval")
	require.NoError(t, err)

	net, err := compiler.NewParser().Parse("approval", raw)
	require.NoError(t, err)
	assert.Equal(t, "approval", net.Name())
	tr, _ := net.Transition("t")
	assert.Equal(t, "ok", tr.Condition)

	_, err = memory.NewFromDocuments(dsl.New("").Document())
	assert.Error(t, err)
}
