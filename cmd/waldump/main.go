// waldump scans a log file offline and prints what recovery would keep.
// Exits nonzero when the scan stops on corruption, so it can gate scripts.
package main

import (
	"flag"
	"fmt"
	"os"

	"keel/wal"
)

func main() {
	var (
		verbose    = flag.Bool("v", false, "print record payloads")
		maxPayload = flag.Int("max-payload", wal.DefaultMaxPayloadSize, "maximum payload size in bytes")
	)
	flag.Parse()

	if flag.NArg() != 1 {
		fmt.Fprintf(os.Stderr, "usage: waldump [-v] <log file>\n")
		os.Exit(2)
	}
	path := flag.Arg(0)

	res, err := wal.Scan(path, wal.Options{MaxPayloadSize: *maxPayload})
	if err != nil {
		fmt.Fprintf(os.Stderr, "waldump: %v\n", err)
		os.Exit(2)
	}

	for i, rec := range res.Records {
		fmt.Printf("%6d  offset=%-10d size=%-8d payload=%d bytes\n",
			i, rec.Offset, rec.Size(), len(rec.Payload))
		if *verbose {
			fmt.Printf("        %q\n", rec.Payload)
		}
	}
	fmt.Printf("records=%d safe_offset=%d outcome=%s\n",
		len(res.Records), res.SafeOffset, res.Outcome)

	if res.Outcome == wal.OutcomeCorrupt {
		os.Exit(1)
	}
}
