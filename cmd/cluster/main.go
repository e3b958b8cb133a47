package main

import (
	"bufio"
	"encoding/json"
	"flag"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/ofisk/community-detection-service/pkg/leiden"
)

func main() {
	input := flag.String("input", "", "edge list file: one 'from to weight' triple per line")
	output := flag.String("output", "", "output JSON file (default: stdout)")
	configFile := flag.String("config", "", "optional algorithm config file")
	resolution := flag.Float64("resolution", 1.0, "modularity resolution parameter")
	seed := flag.Int64("seed", -1, "random seed (-1: time-based)")
	flag.Parse()

	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: "15:04:05"})

	if *input == "" {
		log.Fatal().Msg("Missing required -input flag")
	}

	edges, err := readEdgeList(*input)
	if err != nil {
		log.Fatal().Err(err).Str("file", *input).Msg("Failed to read edge list")
	}

	cfg := leiden.NewConfig()
	if *configFile != "" {
		if err := cfg.LoadFromFile(*configFile); err != nil {
			log.Fatal().Err(err).Str("file", *configFile).Msg("Failed to load config")
		}
	}
	cfg.Set("algorithm.resolution", *resolution)
	cfg.Set("algorithm.random_seed", *seed)

	assignments, err := leiden.DetectCommunities(edges, cfg)
	if err != nil {
		log.Fatal().Err(err).Msg("Detection failed")
	}

	communities := make(map[int]bool)
	for _, a := range assignments {
		communities[a.CommunityID] = true
	}
	log.Info().
		Int("edges", len(edges)).
		Int("nodes", len(assignments)).
		Int("communities", len(communities)).
		Msg("Detection completed")

	out := os.Stdout
	if *output != "" {
		f, err := os.Create(*output)
		if err != nil {
			log.Fatal().Err(err).Str("file", *output).Msg("Failed to create output file")
		}
		defer f.Close()
		out = f
	}

	encoder := json.NewEncoder(out)
	encoder.SetIndent("", "  ")
	if err := encoder.Encode(assignments); err != nil {
		log.Fatal().Err(err).Msg("Failed to write output")
	}
}

// readEdgeList parses a whitespace-separated edge list. Blank lines and
// lines starting with '#' are skipped; a missing weight defaults to 1.
func readEdgeList(path string) ([]leiden.Edge, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	var edges []leiden.Edge
	scanner := bufio.NewScanner(f)
	lineNum := 0
	for scanner.Scan() {
		lineNum++
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}

		fields := strings.Fields(line)
		if len(fields) < 2 {
			return nil, fmt.Errorf("line %d: expected 'from to [weight]', got %q", lineNum, line)
		}

		weight := 1.0
		if len(fields) >= 3 {
			weight, err = strconv.ParseFloat(fields[2], 64)
			if err != nil {
				return nil, fmt.Errorf("line %d: invalid weight %q: %w", lineNum, fields[2], err)
			}
		}

		edges = append(edges, leiden.Edge{From: fields[0], To: fields[1], Weight: weight})
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}

	return edges, nil
}
