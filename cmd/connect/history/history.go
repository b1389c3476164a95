// Package history records the outcome of finished games in MongoDB.
package history

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"sync"
	"time"

	"github.com/ardanlabs/connect4/cmd/connect/game"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

const (
	collectionName = "games"
	writeTimeout   = 5 * time.Second
)

// Move represents a stone played during the game.
type Move struct {
	Column int    `bson:"column"`
	Row    int    `bson:"row"`
	Player string `bson:"player"`
}

// Result represents a finished game as stored in the database.
type Result struct {
	GameID     string    `bson:"game_id"`
	Status     string    `bson:"status"`
	Winner     string    `bson:"winner,omitempty"`
	Stones     int       `bson:"stones"`
	Moves      []Move    `bson:"moves"`
	FinishedAt time.Time `bson:"finished_at"`
}

// NewResult converts the final state of a game into a result.
func NewResult(state game.BoardState, now time.Time) Result {
	moves := make([]Move, len(state.Moves))
	for i, m := range state.Moves {
		moves[i] = Move{
			Column: m.Column,
			Row:    m.Row,
			Player: m.Player.String(),
		}
	}

	return Result{
		GameID:     state.GameID,
		Status:     state.Status.String(),
		Winner:     state.Winner.String(),
		Stones:     state.Stones,
		Moves:      moves,
		FinishedAt: now.UTC(),
	}
}

// =============================================================================

// Collection represents the part of a mongo collection the recorder needs.
type Collection interface {
	InsertOne(ctx context.Context, document any, opts ...*options.InsertOneOptions) (*mongo.InsertOneResult, error)
}

// Recorder saves the result of every finished game. It implements the
// game.Notifier interface. Writes happen in the background so the game is
// never held up by the database.
type Recorder struct {
	log *slog.Logger
	col Collection
	now func() time.Time
	wg  sync.WaitGroup
}

// NewRecorder constructs a recorder that writes into the collection.
func NewRecorder(log *slog.Logger, col Collection) *Recorder {
	if log == nil {
		log = slog.New(slog.NewTextHandler(io.Discard, nil))
	}

	return &Recorder{
		log: log,
		col: col,
		now: time.Now,
	}
}

// Connect opens a connection to the database and prepares the games
// collection.
func Connect(ctx context.Context, uri string, dbName string) (*mongo.Client, *mongo.Collection, error) {
	client, err := mongo.Connect(ctx, options.Client().ApplyURI(uri))
	if err != nil {
		return nil, nil, fmt.Errorf("connect: %w", err)
	}

	if err := client.Ping(ctx, nil); err != nil {
		client.Disconnect(ctx)
		return nil, nil, fmt.Errorf("ping: %w", err)
	}

	col := client.Database(dbName).Collection(collectionName)

	unique := true
	indexModel := mongo.IndexModel{
		Keys:    bson.D{{Key: "game_id", Value: 1}},
		Options: &options.IndexOptions{Unique: &unique},
	}

	if _, err := col.Indexes().CreateOne(ctx, indexModel); err != nil {
		client.Disconnect(ctx)
		return nil, nil, fmt.Errorf("create index: %w", err)
	}

	return client, col, nil
}

// Won records the winning game.
func (r *Recorder) Won(state game.BoardState) {
	r.record(state)
}

// Draw records the drawn game.
func (r *Recorder) Draw(state game.BoardState) {
	r.record(state)
}

func (*Recorder) GameStarted(game.BoardState)           {}
func (*Recorder) StonePlaced(game.BoardState, game.Move) {}
func (*Recorder) SlotFull(int)                           {}
func (*Recorder) TurnChanged(game.Player)                {}

// Close waits for the pending writes to finish.
func (r *Recorder) Close() {
	r.wg.Wait()
}

func (r *Recorder) record(state game.BoardState) {
	result := NewResult(state, r.now())

	r.wg.Add(1)

	go func() {
		defer r.wg.Done()

		ctx, cancel := context.WithTimeout(context.Background(), writeTimeout)
		defer cancel()

		if _, err := r.col.InsertOne(ctx, result); err != nil {
			r.log.Error("record game", "game_id", result.GameID, "ERROR", err)
			return
		}

		r.log.Info("record game", "game_id", result.GameID, "status", result.Status, "winner", result.Winner)
	}()
}
