package cmd

import (
	"fmt"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/louisiaegerv/runescapeOSRS-autoclicker/internal/hotkey"
	"github.com/louisiaegerv/runescapeOSRS-autoclicker/internal/input"
	"github.com/louisiaegerv/runescapeOSRS-autoclicker/internal/observability"
	"github.com/louisiaegerv/runescapeOSRS-autoclicker/internal/profile"
)

var (
	captureName        string
	captureDescription string
	captureMouse       bool
	captureTimeout     time.Duration
)

var captureCmd = &cobra.Command{
	Use:   "capture",
	Short: "Record click points and save them as a profile",
	Long: `Capture records click points interactively.

In the default keyboard mode, press the capture hotkey to enter capture
mode, hover the pointer over a target and press a digit to record the
point with that delay in seconds (0 records 10s, the capture key again
records the 3s default). An exit hotkey finishes and saves.

With --mouse, every physical click records a point at the click location
until no click arrives within the timeout window.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		log := observability.GetLogger()

		store, err := profile.NewStore(appCfg.Profiles.Dir, log.Named("store"))
		if err != nil {
			return err
		}

		var points []profile.ClickPoint
		if captureMouse {
			points = captureByMouse()
		} else {
			points = captureByHotkeys(log.Named("hotkey"))
		}
		if len(points) == 0 {
			fmt.Println("No points captured; nothing saved.")
			return nil
		}

		p := &profile.Profile{
			Name:        captureName,
			Description: captureDescription,
			StartDelay:  profile.DefaultStartDelay,
			ClickPoints: points,
		}
		path, err := store.SaveNew(p)
		if err != nil {
			return err
		}
		fmt.Printf("Saved %d points to %s\n", len(points), path)
		return nil
	},
}

func init() {
	captureCmd.Flags().StringVar(&captureName, "name", "", "profile name")
	captureCmd.Flags().StringVar(&captureDescription, "description", "", "profile description")
	captureCmd.Flags().BoolVar(&captureMouse, "mouse", false, "record points by clicking instead of by hotkey")
	captureCmd.Flags().DurationVar(&captureTimeout, "timeout", 10*time.Second, "mouse mode: stop when no click arrives within this window")
	rootCmd.AddCommand(captureCmd)
}

func captureByMouse() []profile.ClickPoint {
	fmt.Printf("Click anywhere to record a point; pausing %s ends the session.\n", captureTimeout)

	var points []profile.ClickPoint
	for {
		x, y, err := input.CaptureClickPosition(captureTimeout)
		if err != nil {
			break
		}
		pt := profile.NewClickPoint(x, y)
		pt.Delay = float64(hotkey.DefaultCaptureDelay)
		points = append(points, pt)
		fmt.Printf("Point %d: (%d, %d)\n", len(points), x, y)
	}
	return points
}

func captureByHotkeys(log *zap.Logger) []profile.ClickPoint {
	var (
		mu     sync.Mutex
		points []profile.ClickPoint
		finish sync.Once
		done   = make(chan struct{})
	)
	pointer := input.RobotgoPointer{}

	listener := hotkey.NewListener(bindings(), hotkey.Callbacks{
		EnterCapture: func() {
			fmt.Println("Capture mode ON. Hover a target, then press 1-9 for that delay, 0 for 10s, or the capture key again for 3s.")
		},
		Delay: func(seconds int) {
			x, y := pointer.Position()
			pt := profile.NewClickPoint(x, y)
			pt.Delay = float64(seconds)
			mu.Lock()
			points = append(points, pt)
			n := len(points)
			mu.Unlock()
			fmt.Printf("Point %d: (%d, %d) with %ds delay\n", n, x, y, seconds)
		},
		ExitCapture: func() {
			finish.Do(func() { close(done) })
		},
	}, log)
	listener.Start()
	defer listener.Stop()

	fmt.Printf("Press %s to enter capture mode; %v leaves it and saves. Ctrl+C aborts.\n",
		appCfg.Hotkeys.Capture, appCfg.Hotkeys.Exit)

	sig := make(chan os.Signal, 1)
	signal.Notify(sig, os.Interrupt, syscall.SIGTERM)
	defer signal.Stop(sig)

	select {
	case <-done:
	case <-sig:
		return nil
	}

	mu.Lock()
	defer mu.Unlock()
	return points
}
