// sharestress hammers the handle bookkeeping from many goroutines and
// verifies that every payload is accounted for afterwards: counts
// balance to the live handles, and each payload is disposed exactly
// once.
package main

import (
	"flag"
	"fmt"
	"log"
	"os"

	"golang.org/x/sync/errgroup"

	"github.com/partite-ai/shareddata"
	"github.com/partite-ai/shareddata/testutil"
)

func main() {
	workers := flag.Int("workers", 8, "number of concurrent goroutines")
	iterations := flag.Int("iterations", 100000, "copy/detach/release rounds per goroutine")
	flag.Parse()

	if *workers < 1 || *iterations < 1 {
		fmt.Fprintf(os.Stderr, "Usage: %s [-workers n] [-iterations n]\n", os.Args[0])
		os.Exit(1)
	}

	var rec testutil.Recorder
	root := shareddata.NewShared(testutil.NewTracked(&rec, 1))

	seeds := make([]shareddata.Shared[*testutil.Tracked], *workers)
	for i := range seeds {
		seeds[i] = root.Copy()
	}

	var g errgroup.Group
	for i := range seeds {
		h := &seeds[i]
		g.Go(func() error {
			for n := 0; n < *iterations; n++ {
				c := h.Copy()
				switch n % 3 {
				case 0:
					// Plain aliased read.
					if c.ConstData().Refs() < 2 {
						return fmt.Errorf("aliased payload undercounted")
					}
				case 1:
					// Write forces a detach; the copy must end up
					// solely owned.
					c.Data().Value = n
					if refs := c.ConstData().Refs(); refs != 1 {
						return fmt.Errorf("detached payload has %d refs", refs)
					}
				case 2:
					// Relocate the reference through take/adopt.
					adopted := shareddata.AdoptShared(c.Take())
					adopted.Release()
					continue
				}
				c.Release()
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		log.Fatalf("stress worker failed: %v", err)
	}

	for i := range seeds {
		seeds[i].Release()
	}
	if refs := root.ConstData().Refs(); refs != 1 {
		log.Fatalf("root payload has %d refs, want 1", refs)
	}
	root.Release()

	if rec.Live() != 0 {
		log.Fatalf("%d payloads leaked (created %d, disposed %d)",
			rec.Live(), rec.Created(), rec.Disposed())
	}
	fmt.Printf("ok: %d workers x %d iterations, %d payloads created (%d clones), all disposed\n",
		*workers, *iterations, rec.Created(), rec.Clones())
}
