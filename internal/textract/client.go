package textract

import (
	"context"
	"fmt"
	"log"
	"sort"
	"strings"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/textract"
	"github.com/aws/aws-sdk-go-v2/service/textract/types"

	"docsift/internal/config"
	"docsift/internal/port"
)

type analyzerClient struct {
	client       *textract.Client
	pollInterval time.Duration
	maxWait      time.Duration
	opts         LinearizeOptions
}

// NewAnalyzer creates a Textract-backed DocumentAnalyzer implementation.
func NewAnalyzer(cfg *config.TextractConfig) (port.DocumentAnalyzer, error) {
	var opts []func(*awsconfig.LoadOptions) error
	opts = append(opts, awsconfig.WithRegion(cfg.Region))

	if cfg.AccessKey != "" && cfg.SecretKey != "" {
		opts = append(opts, awsconfig.WithCredentialsProvider(
			credentials.NewStaticCredentialsProvider(cfg.AccessKey, cfg.SecretKey, ""),
		))
	}

	awsCfg, err := awsconfig.LoadDefaultConfig(context.Background(), opts...)
	if err != nil {
		return nil, fmt.Errorf("loading aws config: %w", err)
	}

	var txOpts []func(*textract.Options)
	if cfg.Endpoint != "" {
		txOpts = append(txOpts, func(o *textract.Options) {
			o.BaseEndpoint = aws.String(cfg.Endpoint)
		})
	}

	return &analyzerClient{
		client:       textract.NewFromConfig(awsCfg, txOpts...),
		pollInterval: time.Duration(cfg.PollIntervalSecs) * time.Second,
		maxWait:      time.Duration(cfg.MaxWaitSecs) * time.Second,
		opts: LinearizeOptions{
			HideHeaders:     cfg.HideHeaders,
			HideFooters:     cfg.HideFooters,
			HidePageNumbers: cfg.HidePageNumbers,
		},
	}, nil
}

func (c *analyzerClient) AnalyzeDocument(ctx context.Context, bucket, key string, withTables bool) (*port.AnalyzedDocument, error) {
	features := []types.FeatureType{types.FeatureTypeLayout}
	if withTables {
		features = append(features, types.FeatureTypeTables)
	}

	start, err := c.client.StartDocumentAnalysis(ctx, &textract.StartDocumentAnalysisInput{
		DocumentLocation: &types.DocumentLocation{
			S3Object: &types.S3Object{
				Bucket: aws.String(bucket),
				Name:   aws.String(key),
			},
		},
		FeatureTypes: features,
	})
	if err != nil {
		return nil, fmt.Errorf("textract start analysis: %w", err)
	}
	jobID := aws.ToString(start.JobId)
	log.Printf("textract.analyzerClient: started analysis job %s for s3://%s/%s", jobID, bucket, key)

	blocks, err := c.collectBlocks(ctx, jobID)
	if err != nil {
		return nil, err
	}
	return c.assemble(blocks), nil
}

// collectBlocks polls the analysis job until completion and drains all
// result pages.
func (c *analyzerClient) collectBlocks(ctx context.Context, jobID string) ([]types.Block, error) {
	deadline := time.Now().Add(c.maxWait)

	var out *textract.GetDocumentAnalysisOutput
	for {
		var err error
		out, err = c.client.GetDocumentAnalysis(ctx, &textract.GetDocumentAnalysisInput{
			JobId: aws.String(jobID),
		})
		if err != nil {
			return nil, fmt.Errorf("textract get analysis: %w", err)
		}
		if out.JobStatus != types.JobStatusInProgress {
			break
		}
		if time.Now().After(deadline) {
			return nil, fmt.Errorf("textract job %s: timed out after %s", jobID, c.maxWait)
		}
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case <-time.After(c.pollInterval):
		}
	}
	if out.JobStatus != types.JobStatusSucceeded {
		return nil, fmt.Errorf("textract job %s: status %s: %s", jobID, out.JobStatus, aws.ToString(out.StatusMessage))
	}

	blocks := out.Blocks
	for out.NextToken != nil {
		var err error
		out, err = c.client.GetDocumentAnalysis(ctx, &textract.GetDocumentAnalysisInput{
			JobId:     aws.String(jobID),
			NextToken: out.NextToken,
		})
		if err != nil {
			return nil, fmt.Errorf("textract get analysis page: %w", err)
		}
		blocks = append(blocks, out.Blocks...)
	}
	return blocks, nil
}

// assemble converts raw analysis blocks into pages and table fragments.
func (c *analyzerClient) assemble(blocks []types.Block) *port.AnalyzedDocument {
	byID := make(map[string]types.Block, len(blocks))
	for _, b := range blocks {
		byID[aws.ToString(b.Id)] = b
	}

	suppressed := map[string]bool{}
	pageTitles := map[int32][]string{}
	pageHeaders := map[int32][]string{}
	tableWords := map[string]bool{}

	for _, b := range blocks {
		switch b.BlockType {
		case types.BlockTypeLayoutTitle:
			pageTitles[pageOf(b)] = append(pageTitles[pageOf(b)], layoutText(b, byID))
		case types.BlockTypeLayoutHeader:
			pageHeaders[pageOf(b)] = append(pageHeaders[pageOf(b)], layoutText(b, byID))
			if c.opts.HideHeaders {
				markChildren(b, suppressed)
			}
		case types.BlockTypeLayoutFooter:
			if c.opts.HideFooters {
				markChildren(b, suppressed)
			}
		case types.BlockTypeLayoutPageNumber:
			if c.opts.HidePageNumbers {
				markChildren(b, suppressed)
			}
		}
	}

	// Table cell text is already carried by the fragments, so lines whose
	// words belong to a table are kept out of the linear page text.
	doc := &port.AnalyzedDocument{}
	for _, b := range blocks {
		if b.BlockType != types.BlockTypeTable {
			continue
		}
		frag := c.tableFragment(b, byID, tableWords)
		doc.Tables = append(doc.Tables, frag)
	}

	pages := map[int32]*port.AnalyzedPage{}
	var nums []int32
	for _, b := range blocks {
		if b.BlockType != types.BlockTypePage {
			continue
		}
		n := pageOf(b)
		pages[n] = &port.AnalyzedPage{
			Number: int(n),
			Title:  strings.Join(pageTitles[n], "\n"),
			Header: strings.Join(pageHeaders[n], "\n"),
		}
		nums = append(nums, n)
	}
	for _, b := range blocks {
		if b.BlockType != types.BlockTypeLine {
			continue
		}
		if suppressed[aws.ToString(b.Id)] || lineInTable(b, tableWords) {
			continue
		}
		if p, ok := pages[pageOf(b)]; ok {
			p.Lines = append(p.Lines, CleanTextSnippet(aws.ToString(b.Text), 0))
		}
	}

	sort.Slice(nums, func(i, j int) bool { return nums[i] < nums[j] })
	for _, n := range nums {
		doc.Pages = append(doc.Pages, *pages[n])
	}
	return doc
}

// tableFragment flattens a TABLE block into a fragment. Cells marked as
// column headers become the fragment's column names; remaining cells are
// data rows ordered by row and column index.
func (c *analyzerClient) tableFragment(table types.Block, byID map[string]types.Block, tableWords map[string]bool) port.TableFragment {
	frag := port.TableFragment{Page: int(pageOf(table))}

	type cell struct {
		row, col int32
		text     string
		header   bool
	}
	var cells []cell

	for _, rel := range table.Relationships {
		switch rel.Type {
		case types.RelationshipTypeTableTitle:
			for _, id := range rel.Ids {
				if t, ok := byID[id]; ok {
					frag.Title = CleanTextSnippet(wordsText(t, byID), 0)
				}
			}
		case types.RelationshipTypeChild:
			for _, id := range rel.Ids {
				b, ok := byID[id]
				if !ok || b.BlockType != types.BlockTypeCell {
					continue
				}
				cl := cell{
					row:  aws.ToInt32(b.RowIndex),
					col:  aws.ToInt32(b.ColumnIndex),
					text: wordsText(b, byID),
				}
				for _, et := range b.EntityTypes {
					if et == types.EntityTypeColumnHeader {
						cl.header = true
					}
				}
				cells = append(cells, cl)
			}
		}
	}

	sort.Slice(cells, func(i, j int) bool {
		if cells[i].row != cells[j].row {
			return cells[i].row < cells[j].row
		}
		return cells[i].col < cells[j].col
	})

	rows := map[int32][]string{}
	var rowNums []int32
	for _, cl := range cells {
		if cl.header && cl.row == 1 {
			frag.Columns = append(frag.Columns, cl.text)
			continue
		}
		if _, ok := rows[cl.row]; !ok {
			rowNums = append(rowNums, cl.row)
		}
		rows[cl.row] = append(rows[cl.row], cl.text)
	}

	sort.Slice(rowNums, func(i, j int) bool { return rowNums[i] < rowNums[j] })
	for _, n := range rowNums {
		frag.Rows = append(frag.Rows, rows[n])
	}

	markTableWords(table, byID, tableWords)
	return frag
}

// markTableWords records the WORD blocks under a table's cells. LINE
// blocks hang off the PAGE, not the TABLE, so table membership is decided
// at the word level: a line is part of a table when its words are.
func markTableWords(table types.Block, byID map[string]types.Block, out map[string]bool) {
	var walk func(b types.Block)
	walk = func(b types.Block) {
		if b.BlockType == types.BlockTypeWord {
			out[aws.ToString(b.Id)] = true
		}
		for _, rel := range b.Relationships {
			if rel.Type != types.RelationshipTypeChild {
				continue
			}
			for _, id := range rel.Ids {
				if child, ok := byID[id]; ok {
					walk(child)
				}
			}
		}
	}
	walk(table)
}

// lineInTable reports whether any of the line's words were claimed by a
// table fragment.
func lineInTable(line types.Block, tableWords map[string]bool) bool {
	for _, rel := range line.Relationships {
		if rel.Type != types.RelationshipTypeChild {
			continue
		}
		for _, id := range rel.Ids {
			if tableWords[id] {
				return true
			}
		}
	}
	return false
}

func markChildren(b types.Block, out map[string]bool) {
	for _, rel := range b.Relationships {
		if rel.Type != types.RelationshipTypeChild {
			continue
		}
		for _, id := range rel.Ids {
			out[id] = true
		}
	}
}

// layoutText joins the text of a layout block's child lines.
func layoutText(b types.Block, byID map[string]types.Block) string {
	var parts []string
	for _, rel := range b.Relationships {
		if rel.Type != types.RelationshipTypeChild {
			continue
		}
		for _, id := range rel.Ids {
			if child, ok := byID[id]; ok && child.Text != nil {
				parts = append(parts, *child.Text)
			}
		}
	}
	return strings.Join(parts, " ")
}

// wordsText joins the WORD children of a cell or title block.
func wordsText(b types.Block, byID map[string]types.Block) string {
	var parts []string
	for _, rel := range b.Relationships {
		if rel.Type != types.RelationshipTypeChild {
			continue
		}
		for _, id := range rel.Ids {
			child, ok := byID[id]
			if !ok || child.BlockType != types.BlockTypeWord || child.Text == nil {
				continue
			}
			parts = append(parts, *child.Text)
		}
	}
	return strings.Join(parts, " ")
}

func pageOf(b types.Block) int32 {
	if b.Page != nil {
		return *b.Page
	}
	return 1
}
