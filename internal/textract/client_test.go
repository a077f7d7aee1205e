package textract

import (
	"testing"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/textract/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func childRel(ids ...string) types.Relationship {
	return types.Relationship{Type: types.RelationshipTypeChild, Ids: ids}
}

func wordBlock(id, text string) types.Block {
	return types.Block{
		Id:        aws.String(id),
		BlockType: types.BlockTypeWord,
		Text:      aws.String(text),
		Page:      aws.Int32(1),
	}
}

func lineBlock(id, text string, wordIDs ...string) types.Block {
	return types.Block{
		Id:            aws.String(id),
		BlockType:     types.BlockTypeLine,
		Text:          aws.String(text),
		Page:          aws.Int32(1),
		Relationships: []types.Relationship{childRel(wordIDs...)},
	}
}

func cellBlock(id string, row, col int32, header bool, wordIDs ...string) types.Block {
	b := types.Block{
		Id:            aws.String(id),
		BlockType:     types.BlockTypeCell,
		Page:          aws.Int32(1),
		RowIndex:      aws.Int32(row),
		ColumnIndex:   aws.Int32(col),
		Relationships: []types.Relationship{childRel(wordIDs...)},
	}
	if header {
		b.EntityTypes = []types.EntityType{types.EntityTypeColumnHeader}
	}
	return b
}

// Textract hangs LINE blocks off the PAGE and CELL blocks off the TABLE;
// the two trees only meet at the WORD level. Table text must still be
// kept out of the linear page text.
func TestAssemble_TableLinesExcludedFromPageText(t *testing.T) {
	blocks := []types.Block{
		{
			Id:        aws.String("page-1"),
			BlockType: types.BlockTypePage,
			Page:      aws.Int32(1),
			Relationships: []types.Relationship{
				childRel("line-narrative", "line-header", "line-data"),
			},
		},
		lineBlock("line-narrative", "Vehicle rear-ended at low speed.", "w-n1", "w-n2", "w-n3", "w-n4", "w-n5"),
		lineBlock("line-header", "Item Amount", "w-item", "w-amount"),
		lineBlock("line-data", "Bumper 450", "w-bumper", "w-450"),
		wordBlock("w-n1", "Vehicle"),
		wordBlock("w-n2", "rear-ended"),
		wordBlock("w-n3", "at"),
		wordBlock("w-n4", "low"),
		wordBlock("w-n5", "speed."),
		wordBlock("w-item", "Item"),
		wordBlock("w-amount", "Amount"),
		wordBlock("w-bumper", "Bumper"),
		wordBlock("w-450", "450"),
		{
			Id:        aws.String("table-1"),
			BlockType: types.BlockTypeTable,
			Page:      aws.Int32(1),
			Relationships: []types.Relationship{
				childRel("cell-1-1", "cell-1-2", "cell-2-1", "cell-2-2"),
			},
		},
		cellBlock("cell-1-1", 1, 1, true, "w-item"),
		cellBlock("cell-1-2", 1, 2, true, "w-amount"),
		cellBlock("cell-2-1", 2, 1, false, "w-bumper"),
		cellBlock("cell-2-2", 2, 2, false, "w-450"),
	}

	c := &analyzerClient{}
	doc := c.assemble(blocks)

	require.Len(t, doc.Tables, 1)
	assert.Equal(t, []string{"Item", "Amount"}, doc.Tables[0].Columns)
	assert.Equal(t, [][]string{{"Bumper", "450"}}, doc.Tables[0].Rows)

	require.Len(t, doc.Pages, 1)
	assert.Equal(t, []string{"Vehicle rear-ended at low speed."}, doc.Pages[0].Lines)
}

func TestAssemble_HeaderSuppressionToggles(t *testing.T) {
	blocks := []types.Block{
		{
			Id:            aws.String("page-1"),
			BlockType:     types.BlockTypePage,
			Page:          aws.Int32(1),
			Relationships: []types.Relationship{childRel("line-header", "line-body")},
		},
		{
			Id:            aws.String("layout-header"),
			BlockType:     types.BlockTypeLayoutHeader,
			Page:          aws.Int32(1),
			Relationships: []types.Relationship{childRel("line-header")},
		},
		lineBlock("line-header", "Acme Insurance Group", "w-h1", "w-h2", "w-h3"),
		lineBlock("line-body", "Claim opened on 2024-03-01.", "w-b1", "w-b2", "w-b3", "w-b4"),
		wordBlock("w-h1", "Acme"),
		wordBlock("w-h2", "Insurance"),
		wordBlock("w-h3", "Group"),
		wordBlock("w-b1", "Claim"),
		wordBlock("w-b2", "opened"),
		wordBlock("w-b3", "on"),
		wordBlock("w-b4", "2024-03-01."),
	}

	kept := (&analyzerClient{}).assemble(blocks)
	require.Len(t, kept.Pages, 1)
	assert.Equal(t, []string{"Acme Insurance Group", "Claim opened on 2024-03-01."}, kept.Pages[0].Lines)
	assert.Equal(t, "Acme Insurance Group", kept.Pages[0].Header)

	hidden := (&analyzerClient{opts: LinearizeOptions{HideHeaders: true}}).assemble(blocks)
	require.Len(t, hidden.Pages, 1)
	assert.Equal(t, []string{"Claim opened on 2024-03-01."}, hidden.Pages[0].Lines)
	assert.Equal(t, "Acme Insurance Group", hidden.Pages[0].Header)
}
