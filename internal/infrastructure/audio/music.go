// Package audio plays the looping background music owned by scenes
package audio

import (
	"bytes"
	"fmt"

	"github.com/hajimehoshi/ebiten/v2/audio"
)

// Player is the part of an ebiten audio player Music drives
type Player interface {
	Play()
	Pause()
	IsPlaying() bool
	SetVolume(volume float64)
	Close() error
}

// Music is a track that plays an intro once and then loops its body
type Music struct {
	player Player
	volume float64
}

// NewMusic creates a track from raw PCM in the context's format
func NewMusic(ctx *audio.Context, intro, loop []byte) (*Music, error) {
	data := make([]byte, 0, len(intro)+len(loop))
	data = append(data, intro...)
	data = append(data, loop...)

	src := audio.NewInfiniteLoopWithIntro(bytes.NewReader(data), int64(len(intro)), int64(len(loop)))
	p, err := ctx.NewPlayer(src)
	if err != nil {
		return nil, fmt.Errorf("failed to create player: %w", err)
	}
	return NewMusicWithPlayer(p), nil
}

// NewMusicWithPlayer wraps an existing player
func NewMusicWithPlayer(p Player) *Music {
	return &Music{player: p, volume: 1}
}

// NewToneMusic synthesizes the notes and creates a track from them
func NewToneMusic(ctx *audio.Context, intro, loop []Note) (*Music, error) {
	t := NewTone()
	t.SampleRate = ctx.SampleRate()
	return NewMusic(ctx, t.Generate(intro), t.Generate(loop))
}

func (m *Music) Play() {
	m.player.Play()
}

func (m *Music) Pause() {
	m.player.Pause()
}

func (m *Music) IsPlaying() bool {
	return m.player.IsPlaying()
}

// SetVolume sets the volume, clamped to 0..1
func (m *Music) SetVolume(volume float64) {
	if volume < 0 {
		volume = 0
	}
	if volume > 1 {
		volume = 1
	}
	m.volume = volume
	m.player.SetVolume(volume)
}

func (m *Music) Volume() float64 {
	return m.volume
}

// Close stops the track and releases the player
func (m *Music) Close() error {
	m.player.Pause()
	if err := m.player.Close(); err != nil {
		return fmt.Errorf("failed to close player: %w", err)
	}
	return nil
}
