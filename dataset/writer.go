package dataset

import (
	"bufio"
	"encoding/csv"
	"io"
	"strconv"
)

var biddingHeader = []string{
	"hand", "score_hearts", "score_diamonds", "score_clubs", "score_spades",
	"pimc_n", "bias_mode",
}

// BiddingWriter streams BiddingRow records to a CSV destination, spec.md
// §6's bidding corpus schema. It buffers writes and must be Closed to
// flush the underlying writer.
type BiddingWriter struct {
	bw *bufio.Writer
	cw *csv.Writer
	rw io.Writer
}

// NewBiddingWriter wraps dst in a buffered CSV writer and emits the header
// row immediately.
func NewBiddingWriter(dst io.Writer) (*BiddingWriter, error) {
	bw := bufio.NewWriterSize(dst, 1<<20)
	cw := csv.NewWriter(bw)
	if err := cw.Write(biddingHeader); err != nil {
		return nil, err
	}
	return &BiddingWriter{bw: bw, cw: cw}, nil
}

// Write appends one row.
func (w *BiddingWriter) Write(row BiddingRow) error {
	rec := []string{
		strconv.FormatUint(uint64(row.Hand), 10),
		strconv.FormatInt(int64(row.ScoreHearts), 10),
		strconv.FormatInt(int64(row.ScoreDiamonds), 10),
		strconv.FormatInt(int64(row.ScoreClubs), 10),
		strconv.FormatInt(int64(row.ScoreSpades), 10),
		strconv.FormatInt(int64(row.PIMCN), 10),
		strconv.FormatUint(uint64(row.BiasMode), 10),
	}
	return w.cw.Write(rec)
}

// Close flushes buffered records and the CSV writer.
func (w *BiddingWriter) Close() error {
	w.cw.Flush()
	if err := w.cw.Error(); err != nil {
		return err
	}
	return w.bw.Flush()
}

var gameplayHeader = []string{
	"hand_0", "hand_1", "hand_2", "hand_3",
	"trump", "declarer", "starter",
	"trick_0", "trick_1", "trick_2", "trick_3",
	"ns_points", "ew_points",
	"best_card", "best_value", "second_best_value", "perturbed",
}

// GameplayWriter streams GameplayRow records to a CSV destination, spec.md
// §6's gameplay corpus schema. It buffers writes and must be Closed to
// flush the underlying writer.
type GameplayWriter struct {
	bw *bufio.Writer
	cw *csv.Writer
}

// NewGameplayWriter wraps dst in a buffered CSV writer and emits the
// header row immediately.
func NewGameplayWriter(dst io.Writer) (*GameplayWriter, error) {
	bw := bufio.NewWriterSize(dst, 1<<20)
	cw := csv.NewWriter(bw)
	if err := cw.Write(gameplayHeader); err != nil {
		return nil, err
	}
	return &GameplayWriter{bw: bw, cw: cw}, nil
}

// Write appends one row.
func (w *GameplayWriter) Write(row GameplayRow) error {
	rec := []string{
		strconv.FormatUint(uint64(row.Hands[0]), 10),
		strconv.FormatUint(uint64(row.Hands[1]), 10),
		strconv.FormatUint(uint64(row.Hands[2]), 10),
		strconv.FormatUint(uint64(row.Hands[3]), 10),
		strconv.FormatInt(int64(row.Trump), 10),
		strconv.FormatInt(int64(row.Declarer), 10),
		strconv.FormatInt(int64(row.Starter), 10),
		strconv.FormatUint(uint64(row.TrickCards[0]), 10),
		strconv.FormatUint(uint64(row.TrickCards[1]), 10),
		strconv.FormatUint(uint64(row.TrickCards[2]), 10),
		strconv.FormatUint(uint64(row.TrickCards[3]), 10),
		strconv.FormatInt(int64(row.NSPoints), 10),
		strconv.FormatInt(int64(row.EWPoints), 10),
		strconv.FormatUint(uint64(row.BestCard), 10),
		strconv.FormatInt(int64(row.BestValue), 10),
		strconv.FormatInt(int64(row.SecondBestValue), 10),
		strconv.FormatBool(row.Perturbed),
	}
	return w.cw.Write(rec)
}

// Close flushes buffered records and the CSV writer.
func (w *GameplayWriter) Close() error {
	w.cw.Flush()
	if err := w.cw.Error(); err != nil {
		return err
	}
	return w.bw.Flush()
}
