package extract

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestReconcile_SubsetOfFound(t *testing.T) {
	found := []string{"Qatar", "Nigeria", "Russia"}
	summary := "Qatar and Russia dominate the supply outlook."

	mentioned := Reconcile(found, summary)

	assert.Equal(t, []string{"Qatar", "Russia"}, mentioned)
}

func TestReconcile_NeverIntroducesUnfoundCountries(t *testing.T) {
	found := []string{"Qatar"}
	summary := "Algeria, Libya and Qatar all feature here."

	mentioned := Reconcile(found, summary)

	assert.Equal(t, []string{"Qatar"}, mentioned)
}

func TestReconcile_CaseInsensitive(t *testing.T) {
	mentioned := Reconcile([]string{"Nigeria"}, "NIGERIA leads African output.")

	assert.Equal(t, []string{"Nigeria"}, mentioned)
}

func TestReconcile_UAEAliasInjected(t *testing.T) {
	found := []string{"UAE"}
	summary := "The United Arab Emirates expanded its LNG fleet."

	mentioned := Reconcile(found, summary)

	assert.Equal(t, []string{"UAE"}, mentioned)
}

func TestReconcile_UAEAliasRequiresFoundEntry(t *testing.T) {
	found := []string{"Qatar"}
	summary := "The United Arab Emirates expanded its LNG fleet."

	mentioned := Reconcile(found, summary)

	assert.NotContains(t, mentioned, "UAE")
}

func TestReconcile_SortedAndDeduplicated(t *testing.T) {
	found := []string{"Venezuela", "Algeria", "Peru"}
	summary := "Peru, Venezuela and Algeria each signed agreements."

	mentioned := Reconcile(found, summary)

	assert.Equal(t, []string{"Algeria", "Peru", "Venezuela"}, mentioned)
}

func TestReconcile_EmptySummary(t *testing.T) {
	mentioned := Reconcile([]string{"Qatar"}, "")

	assert.Empty(t, mentioned)
}
