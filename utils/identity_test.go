package utils

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/Aashish23092/planilla-ledger/dto"
)

// employeeRow builds a row with leading identity cells followed by count
// values "1.00", "2.00", ...
func employeeRow(count int, identity ...string) dto.RawRow {
	row := dto.RawRow(append([]string{}, identity...))
	for i := 1; i <= count; i++ {
		row = append(row, fmt.Sprintf("%d.00", i))
	}
	return row
}

func TestSplitIdentityCodeNameAndTrailingSequence(t *testing.T) {
	split := SplitIdentity(employeeRow(17, "D46V11U JUAN PEREZ 7"), DefaultHeuristics())

	assert.Equal(t, "D46V11U", split.Identity.Code)
	assert.Equal(t, "7", split.Identity.Sequence)
	assert.Equal(t, "JUAN PEREZ", split.Identity.Name)
	assert.Equal(t, 1, split.Boundary)
	assert.Len(t, split.Values, 17)
}

func TestSplitIdentityAcrossCells(t *testing.T) {
	split := SplitIdentity(employeeRow(17, "D46V11U", "MARIA JOSE\nLOPEZ"), DefaultHeuristics())

	assert.Equal(t, "D46V11U", split.Identity.Code)
	assert.Equal(t, "MARIA JOSE LOPEZ", split.Identity.Name)
	assert.Empty(t, split.Identity.Sequence)
	assert.Equal(t, 2, split.Boundary)
}

func TestSplitIdentityUnrecoverableCode(t *testing.T) {
	h := DefaultHeuristics()

	split := SplitIdentity(employeeRow(17, "JUAN PEREZ"), h)
	assert.Equal(t, DefaultCodeSentinel, split.Identity.Code)
	assert.Equal(t, "JUAN PEREZ", split.Identity.Name)

	h.CodeSentinel = ""
	split = SplitIdentity(employeeRow(17, "JUAN PEREZ"), h)
	assert.Empty(t, split.Identity.Code)
	assert.Equal(t, "JUAN PEREZ", split.Identity.Name)
}

func TestSplitIdentityLeadingCorrelativeCell(t *testing.T) {
	split := SplitIdentity(employeeRow(17, "12", "D46V11U JUAN PEREZ"), DefaultHeuristics())

	assert.Equal(t, "12", split.Identity.Sequence)
	assert.Equal(t, "D46V11U", split.Identity.Code)
	assert.Equal(t, "JUAN PEREZ", split.Identity.Name)
	assert.Len(t, split.Values, 17)
}

func TestSplitIdentityLeadingNumericCodeCell(t *testing.T) {
	split := SplitIdentity(employeeRow(17, "3", "00123", "ANA RUIZ"), DefaultHeuristics())

	assert.Equal(t, "3", split.Identity.Sequence)
	assert.Equal(t, "00123", split.Identity.Code)
	assert.Equal(t, "ANA RUIZ", split.Identity.Name)
}

func TestSplitIdentityLeadingSequenceToken(t *testing.T) {
	split := SplitIdentity(employeeRow(17, "4 JUAN PEREZ"), DefaultHeuristics())

	assert.Equal(t, "4", split.Identity.Sequence)
	assert.Equal(t, DefaultCodeSentinel, split.Identity.Code)
	assert.Equal(t, "JUAN PEREZ", split.Identity.Name)
}

func TestSplitIdentitySequenceFromSurplusRun(t *testing.T) {
	row := dto.RawRow{"D46V11U JUAN PEREZ", "9"}
	row = append(row, employeeRow(17)...)

	split := SplitIdentity(row, DefaultHeuristics())
	assert.Equal(t, "9", split.Identity.Sequence)
	assert.Len(t, split.Values, 18)
}

func TestSplitIdentityKeepsDaysWhenRunFits(t *testing.T) {
	row := dto.RawRow{"D46V11U JUAN PEREZ", "15"}
	row = append(row, employeeRow(16)...)

	split := SplitIdentity(row, DefaultHeuristics())
	assert.Empty(t, split.Identity.Sequence)
	assert.Equal(t, "15", split.Values[0])
}

func TestSplitIdentityPlaceholdersKeepTheirSlot(t *testing.T) {
	split := SplitIdentity(dto.RawRow{"JUAN PEREZ", "15", "-", "", "300.00"}, DefaultHeuristics())

	assert.Equal(t, []string{"15", "-", "300.00"}, split.Values)
}

func TestSplitIdentityNoIdentityText(t *testing.T) {
	split := SplitIdentity(employeeRow(17), DefaultHeuristics())

	assert.Empty(t, split.Identity.Name)
	assert.Equal(t, 0, split.Boundary)
}
