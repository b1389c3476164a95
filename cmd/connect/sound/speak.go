// Package sound provides spoken feedback for the game.
package sound

import (
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"sync"

	htgotts "github.com/hegedustibor/htgo-tts"
	handlers "github.com/hegedustibor/htgo-tts/handlers"
	voices "github.com/hegedustibor/htgo-tts/voices"
)

const fileName = "speech"

// Speaker uses text to speech to announce game events.
type Speaker struct {
	log    *slog.Logger
	folder string
	speech func(msg string) error

	mu sync.Mutex
	on bool

	playing sync.Mutex
	wg      sync.WaitGroup
}

// New constructs a speaker that writes audio files to the specified folder and
// plays them with mplayer.
func New(log *slog.Logger, folder string, on bool) *Speaker {
	if log == nil {
		log = slog.New(slog.NewTextHandler(io.Discard, nil))
	}

	spk := Speaker{
		log:    log,
		folder: folder,
		on:     on,
	}

	spk.speech = spk.play

	return &spk
}

// Toggle turns the sound for speaking on or off.
func (spk *Speaker) Toggle() bool {
	spk.mu.Lock()
	defer spk.mu.Unlock()

	spk.on = !spk.on
	return spk.on
}

// On reports whether the speaker is turned on.
func (spk *Speaker) On() bool {
	spk.mu.Lock()
	defer spk.mu.Unlock()

	return spk.on
}

// Say speaks the message in the background. Only one message is spoken at a
// time since the audio file is reused.
func (spk *Speaker) Say(msg string) {
	if !spk.On() {
		return
	}

	spk.wg.Add(1)

	go func() {
		defer spk.wg.Done()

		spk.playing.Lock()
		defer spk.playing.Unlock()

		if err := spk.speech(msg); err != nil {
			spk.log.Error("speak", "msg", msg, "ERROR", err)
		}
	}()
}

// Wait blocks until every message has been spoken.
func (spk *Speaker) Wait() {
	spk.wg.Wait()
}

func (spk *Speaker) play(msg string) error {
	speech := htgotts.Speech{Folder: spk.folder, Language: voices.English, Handler: &handlers.MPlayer{}}

	path := filepath.Join(spk.folder, fileName+".mp3")
	os.Remove(path)

	file, err := speech.CreateSpeechFile(msg, fileName)
	if err != nil {
		return err
	}

	defer os.Remove(path)

	return speech.PlaySpeechFile(file)
}
