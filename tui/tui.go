// Package tui is the interactive playback surface: mpv renders the video while the terminal hosts
// the scrub timeline, driven by mouse gestures.
package tui

import (
	"fmt"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/sirupsen/logrus"
	"github.com/spf13/viper"
	"github.com/vidscrub/vidscrub/config"
	"github.com/vidscrub/vidscrub/haptic"
	"github.com/vidscrub/vidscrub/key"
	"github.com/vidscrub/vidscrub/log"
	"github.com/vidscrub/vidscrub/player"
	"github.com/vidscrub/vidscrub/timeline"
)

// Options selects what to play.
type Options struct {
	Target  string
	Title   string
	Initial timeline.Mode
}

// Run launches mpv on the target and blocks until the user quits or mpv exits.
func Run(options *Options) error {
	params, err := config.TimelineParams()
	if err != nil {
		return err
	}

	interval := time.Duration(viper.GetInt(key.PlayerObserveInterval)) * time.Millisecond
	if interval <= 0 {
		return fmt.Errorf("%s must be positive", key.PlayerObserveInterval)
	}

	sink, err := haptic.New(viper.GetString(key.HapticsSink))
	if err != nil {
		return err
	}
	if bell, ok := sink.(*haptic.Bell); ok {
		defer bell.Close()
	}

	mpv := player.NewMPV(viper.GetString(key.PlayerBinary), viper.GetStringSlice(key.PlayerArgs))
	if err := mpv.Play(options.Target, options.Title); err != nil {
		return fmt.Errorf("mpv playback failed: %w", err)
	}
	defer func() {
		if err := mpv.Close(); err != nil {
			log.Warnf("closing mpv: %v", err)
		}
	}()

	log.With(logrus.Fields{
		"target": options.Target,
		"socket": mpv.Socket(),
	}).Info("playback started")

	// program is assigned before any producer below can fire.
	var program *tea.Program
	send := func(msg tea.Msg) {
		program.Send(msg)
	}

	clock := player.NewClock(mpv, func(err error) {
		send(clockErrMsg{err: err})
	})
	defer clock.Close()

	bubble := newBubble(bubbleOptions{
		Title:     options.Title,
		Clock:     clock,
		Haptics:   sink,
		Scheduler: timeline.NewTickerScheduler(func(fn func()) { send(runMsg(fn)) }),
		Params:    params,
		Initial:   options.Initial,
		CellWidth: viper.GetFloat64(key.TUICellWidth),
		LongPress: time.Duration(viper.GetInt(key.TimelineLongPress)) * time.Millisecond,
		ShowTicks: viper.GetBool(key.TUIShowTicks),
		ShowHelp:  viper.GetBool(key.TUIShowHelp),
		Exited:    mpv.Wait(),
	})
	program = tea.NewProgram(bubble, tea.WithAltScreen(), tea.WithMouseCellMotion())

	if options.Initial == timeline.Playing {
		clock.Play()
	}

	listener := player.NewEventListener(mpv.Socket(), func(e player.Event) {
		send(playerEventMsg(e))
	})
	if err := listener.Start(); err != nil {
		log.Warnf("property observer unavailable, polling the duration instead: %v", err)
		go pollDuration(mpv, interval, send)
	} else {
		defer listener.Stop()
	}

	mpv.StartTimeObserver(interval, func(pos float64) {
		send(timePosMsg(pos))
	})
	defer mpv.StopTimeObserver()

	_, err = program.Run()
	// The loop is gone, so a coast still ticking would send into a finished program.
	bubble.controller.Close()
	return err
}

// pollDuration stands in for the duration observer. mpv reports the property as unavailable until
// the file is loaded, so it retries until the first answer or until mpv exits.
func pollDuration(mpv *player.MPV, interval time.Duration, send func(tea.Msg)) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-mpv.Wait():
			return
		case <-ticker.C:
			if duration, err := mpv.GetDuration(); err == nil {
				send(playerEventMsg{Name: "duration", Data: duration})
				return
			}
		}
	}
}
