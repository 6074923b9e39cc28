package rules_test

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/naomili-code/scamalyst/internal/domain/rules"
)

func TestPhraseSet_FindReportsListOrder(t *testing.T) {
	set := rules.NewPhraseSet("urgent", "act now", "immediately")

	found := set.Find("please act now, this is urgent and must happen immediately")

	assert.Equal(t, []string{"urgent", "act now", "immediately"}, found)
}

func TestPhraseSet_ListOrderNotTextOrder(t *testing.T) {
	set := rules.NewPhraseSet("language model", "as an ai")

	found := set.Find("as an ai language model, i cannot")

	assert.Equal(t, []string{"language model", "as an ai"}, found)
}

func TestPhraseSet_SubstringSemantics(t *testing.T) {
	set := rules.NewPhraseSet("pin")

	assert.True(t, set.Any("enter your pin"))
	assert.True(t, set.Any("spinning"), "phrases match as substrings")
	assert.False(t, set.Any("p i n"))
}

func TestPhraseSet_Empty(t *testing.T) {
	set := rules.NewPhraseSet("urgent")

	assert.Nil(t, set.Find(""))
	assert.False(t, set.Any("nothing to see"))
	assert.Equal(t, 1, set.Len())
}

func TestPhraseSet_RepeatedHitsReportedOnce(t *testing.T) {
	set := rules.NewPhraseSet("asap")

	assert.Equal(t, []string{"asap"}, set.Find("asap asap asap"))
}

func TestPhraseSet_ConcurrentUse(t *testing.T) {
	set := rules.NewPhraseSet("urgent", "password")

	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			assert.Equal(t, []string{"urgent", "password"}, set.Find("urgent: send your password"))
		}()
	}
	wg.Wait()
}

func TestPhraseSet_PhrasesIsCopy(t *testing.T) {
	set := rules.NewPhraseSet("a", "b")

	p := set.Phrases()
	p[0] = "z"

	assert.Equal(t, []string{"a", "b"}, set.Phrases())
}

func TestCatalogueSizes(t *testing.T) {
	assert.Equal(t, 13, rules.UrgencyPhrases.Len())
	assert.Equal(t, 15, rules.SensitivePhrases.Len())
	assert.Len(t, rules.MessageBrands, 8)
	assert.Len(t, rules.LookalikeBrands, 10)
	assert.Len(t, rules.StopWords, 22)
	assert.Len(t, rules.Archetypes, 4)
}
