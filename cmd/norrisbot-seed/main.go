// Command norrisbot-seed creates the norrisbot joke database and loads it
// with jokes from a text file (one joke per block, blocks separated by blank
// lines). The bot itself never creates or deletes jokes so this is the one
// place the jokes table gets filled.
package main

import (
	"bufio"
	"flag"
	"log"
	"os"
	"strings"

	"github.com/alexandre-normand/norrisbot/store/sqlitedb"
)

func main() {
	dbPath := flag.String("db", "~/.norrisbot/norrisbot.db", "path to the joke database to create or update")
	jokesPath := flag.String("jokes", "", "path to a text file with jokes separated by blank lines")
	flag.Parse()

	if *jokesPath == "" {
		flag.Usage()
		os.Exit(2)
	}

	f, err := os.Open(*jokesPath)
	if err != nil {
		log.Fatalf("Error opening jokes file: %v", err)
	}
	defer f.Close()

	jokes, err := readJokes(f)
	if err != nil {
		log.Fatalf("Error reading jokes file [%s]: %v", *jokesPath, err)
	}

	sdb, err := sqlitedb.Create(*dbPath)
	if err != nil {
		log.Fatalf("Error creating joke database: %v", err)
	}
	defer sdb.Close()

	added := 0
	for _, j := range jokes {
		id, err := sdb.AddJoke(j)
		if err != nil {
			log.Fatalf("Error adding joke: %v", err)
		}

		if id != 0 {
			added++
		}
	}

	count, err := sdb.CountJokes()
	if err != nil {
		log.Fatalf("Error counting jokes: %v", err)
	}

	log.Printf("Added %d new jokes (%d total in %s)", added, count, sdb.Path)
}

// readJokes splits the file in blocks separated by one or more blank lines,
// each block being a single joke with inner newlines preserved
func readJokes(f *os.File) (jokes []string, err error) {
	var current strings.Builder

	flush := func() {
		if joke := strings.TrimSpace(current.String()); joke != "" {
			jokes = append(jokes, joke)
		}

		current.Reset()
	}

	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		line := scanner.Text()

		if strings.TrimSpace(line) == "" {
			flush()
			continue
		}

		if current.Len() > 0 {
			current.WriteString("\n")
		}

		current.WriteString(line)
	}

	if err = scanner.Err(); err != nil {
		return nil, err
	}

	flush()

	return jokes, nil
}
