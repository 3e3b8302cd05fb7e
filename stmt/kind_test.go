package stmt

import (
	"testing"

	json "github.com/goccy/go-json"

	"github.com/golangyang/yangc/internal/testutil"
)

func TestKindNames(t *testing.T) {
	testutil.Equal(t, "module", KindModule.String())
	testutil.Equal(t, "leaf-list", KindLeafList.String())
	testutil.Equal(t, "error-message", KindErrorMessage.String())
	testutil.Equal(t, "Kind(999)", Kind(999).String())

	k, ok := KindFromName("container")
	testutil.True(t, ok)
	testutil.Equal(t, KindContainer, k)

	_, ok = KindFromName("not-a-keyword")
	testutil.False(t, ok)
	_, ok = KindFromName("invalid")
	testutil.False(t, ok)
}

func TestKindCanonicalOrder(t *testing.T) {
	// descriptor tables rely on the declaration order of the kinds
	ordered := []Kind{
		KindModule, KindNamespace, KindPrefix, KindImport, KindRevision,
		KindExtension, KindTypedef, KindType, KindGrouping, KindContainer,
		KindLeaf, KindLeafList, KindUses, KindDefault, KindConfig,
		KindMust, KindWhen, KindDescription, KindReference,
	}
	for i := 1; i < len(ordered); i++ {
		testutil.True(t, ordered[i-1] < ordered[i],
			"%s must order before %s", ordered[i-1], ordered[i])
	}
}

func TestKindIsDataNode(t *testing.T) {
	testutil.True(t, KindContainer.IsDataNode())
	testutil.True(t, KindLeaf.IsDataNode())
	testutil.True(t, KindLeafList.IsDataNode())
	testutil.False(t, KindUses.IsDataNode())
	testutil.False(t, KindTypedef.IsDataNode())
	testutil.False(t, KindModule.IsDataNode())
}

func TestKindJSON(t *testing.T) {
	data, err := json.Marshal(KindLeafList)
	testutil.NoError(t, err)
	testutil.Equal(t, `"leaf-list"`, string(data))

	var k Kind
	testutil.NoError(t, json.Unmarshal([]byte(`"typedef"`), &k))
	testutil.Equal(t, KindTypedef, k)

	if err := json.Unmarshal([]byte(`"nope"`), &k); err == nil {
		t.Fatal("unknown keyword accepted")
	}
	if _, err := json.Marshal(KindInvalid); err == nil {
		t.Fatal("invalid kind marshaled")
	}
}
