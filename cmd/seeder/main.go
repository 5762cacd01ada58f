package main

import (
	"bufio"
	"context"
	"flag"
	"fmt"
	"iter"
	"log/slog"
	"os"

	"github.com/poiesic/sumprep"
	"github.com/poiesic/sumprep/core"
	"github.com/poiesic/sumprep/ingestion"
)

var sentences = []string{
	"The harbor master logged every ship that entered before dawn.",
	"Fog rolled in from the bay and settled over the docks.",
	"Fishermen mended their nets while gulls circled overhead.",
	"A cargo vessel from the south arrived two days late.",
	"Its captain blamed a storm that had closed the northern passage.",
	"The council met on Friday to discuss the new toll.",
	"Merchants argued that the fee would drive trade elsewhere.",
	"After three hours the vote was postponed until spring.",
	"Several members left before the session had ended.",
	"The mayor promised a written report by the end of the month.",
	"Heavy rain flooded the lower market on Tuesday.",
	"Stall owners moved their goods to the church steps.",
	"Volunteers stacked sandbags along the canal wall.",
	"By evening the water had receded from most streets.",
	"Damage was limited to a bakery and two warehouses.",
	"The school opened a new library wing this autumn.",
	"Donations from former students paid for most of the shelves.",
	"Children can now borrow up to five books at a time.",
	"The head librarian plans a reading club for the winter.",
	"Attendance at the opening exceeded every expectation.",
	"A rare comet will be visible low in the western sky.",
	"Astronomers recommend viewing it an hour after sunset.",
	"The observatory will keep its doors open late all week.",
	"Clear skies are forecast through the weekend.",
	"Binoculars are enough to see the faint tail.",
	"The railway company announced a faster morning service.",
	"Trains will leave the central station every twenty minutes.",
	"Commuters welcomed the change but questioned the fares.",
	"The company said prices would stay fixed until next year.",
	"New carriages are expected to arrive in the summer.",
}

// Words that survive as standalone fragments after sentence splitting.
var fragments = []string{"Indeed.", "However", "Meanwhile,", "Yes", "Notes"}

var (
	dbPath    = flag.String("db", "./pairs_db", "database directory")
	seedFile  = flag.String("src", "", "file of seed sentences, one per line")
	groupSize = flag.Int("group-size", 5, "sentences per document group")
	batchSize = flag.Int("batch", 4, "document groups per ingest call")
)

func init() {
	handler := slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{
		Level: slog.LevelInfo,
	})
	slog.SetDefault(slog.New(handler))
}

// linesFromFile returns an iterator over lines in a file.
func linesFromFile(filename string) (iter.Seq[string], error) {
	f, err := os.Open(filename)
	if err != nil {
		return nil, err
	}

	return func(yield func(string) bool) {
		defer f.Close()
		scanner := bufio.NewScanner(f)
		for scanner.Scan() {
			if !yield(scanner.Text()) {
				return
			}
		}
	}, nil
}

// linesFromSlice returns an iterator over a slice of strings.
func linesFromSlice(lines []string) iter.Seq[string] {
	return func(yield func(string) bool) {
		for _, line := range lines {
			if !yield(line) {
				return
			}
		}
	}
}

// synthesizeGroups packs lines into labeled document groups. The first
// sentence of each group is marked as the summary, every third sentence
// gets a stray leading newline, and each group gains one fragment.
func synthesizeGroups(source iter.Seq[string], size int) iter.Seq[core.DocumentGroup] {
	return func(yield func(core.DocumentGroup) bool) {
		var group core.DocumentGroup
		n := 0

		flush := func() bool {
			if len(group.Sentences) == 0 {
				return true
			}
			frag := fragments[n%len(fragments)]
			group.Sentences = append(group.Sentences, frag)
			group.Labels = append(group.Labels, 0)
			n++
			ok := yield(group)
			group = core.DocumentGroup{}
			return ok
		}

		for line := range source {
			if group.ID == "" {
				group.ID = core.DocID(fmt.Sprintf("seed-%04d", n))
			}
			pos := len(group.Sentences)
			if pos%3 == 2 {
				line = "\n" + line
			}
			label := 0.0
			if pos == 0 {
				label = 1
			}
			group.Sentences = append(group.Sentences, line)
			group.Labels = append(group.Labels, label)

			if len(group.Sentences) == size {
				if !flush() {
					return
				}
			}
		}
		flush()
	}
}

// ingestBatched reads groups from source and ingests them in batches.
func ingestBatched(ctx context.Context, pipeline *ingestion.Pipeline, source iter.Seq[core.DocumentGroup], batchSize int) error {
	batch := make([]core.DocumentGroup, 0, batchSize)

	for group := range source {
		batch = append(batch, group)
		if len(batch) == batchSize {
			if _, err := pipeline.Ingest(ctx, batch); err != nil {
				return err
			}
			batch = batch[:0]
		}
	}

	// Process any remaining groups
	if len(batch) > 0 {
		if _, err := pipeline.Ingest(ctx, batch); err != nil {
			return err
		}
	}

	return nil
}

func main() {
	flag.Parse()
	if *groupSize < 1 || *batchSize < 1 {
		slog.Error("group-size and batch must be positive")
		os.Exit(1)
	}

	db, err := sumprep.NewDatabase(*dbPath)
	if err != nil {
		panic(err)
	}
	defer db.Close()

	ingester, err := db.NewIngestionPipeline()
	if err != nil {
		panic(err)
	}
	defer ingester.Release()

	ctx := context.Background()

	// Determine source of seed data
	var source iter.Seq[string]
	if *seedFile != "" {
		source, err = linesFromFile(*seedFile)
		if err != nil {
			panic(err)
		}
	} else {
		source = linesFromSlice(sentences)
	}

	if err := ingestBatched(ctx, ingester, synthesizeGroups(source, *groupSize), *batchSize); err != nil {
		panic(err)
	}
}
