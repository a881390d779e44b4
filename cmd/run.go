package cmd

import (
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/louisiaegerv/runescapeOSRS-autoclicker/internal/engine"
	"github.com/louisiaegerv/runescapeOSRS-autoclicker/internal/hotkey"
	"github.com/louisiaegerv/runescapeOSRS-autoclicker/internal/input"
	"github.com/louisiaegerv/runescapeOSRS-autoclicker/internal/observability"
	"github.com/louisiaegerv/runescapeOSRS-autoclicker/internal/profile"
)

var (
	runLoops      int
	runStartDelay float64
	runNoVerify   bool
	runHotkeys    bool
)

var runCmd = &cobra.Command{
	Use:   "run <profile>",
	Short: "Run a saved click profile",
	Long: `Run loads a saved profile and clicks through its points until the
loop budget is exhausted or the run is stopped. The argument is either a
path to a profile file or the name of a profile in the profile directory.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		log := observability.GetLogger()

		store, err := profile.NewStore(appCfg.Profiles.Dir, log.Named("store"))
		if err != nil {
			return err
		}
		path, err := resolveProfilePath(store, args[0])
		if err != nil {
			return err
		}
		prof, err := store.Load(path)
		if err != nil {
			return err
		}

		eng := engine.New(input.RobotgoPointer{}, log.Named("engine"))
		eng.ApplyProfile(prof)
		if cmd.Flags().Changed("loops") {
			eng.SetLoopCount(runLoops)
		}
		if cmd.Flags().Changed("start-delay") {
			eng.SetStartDelay(runStartDelay)
		}
		eng.SetVerifyPosition(appCfg.Engine.VerifyPosition && !runNoVerify)
		eng.SetDebug(appCfg.Engine.Debug)

		eng.SetOnStatus(func(status string) {
			fmt.Println(status)
		})
		eng.SetOnClick(func(index, x, y, total int) {
			fmt.Printf("Click #%d at (%d, %d)\n", total, x, y)
		})
		eng.SetOnLoopComplete(func(pass int) {
			fmt.Printf("Loop %d complete\n", pass)
		})

		sig := make(chan os.Signal, 1)
		signal.Notify(sig, os.Interrupt, syscall.SIGTERM)

		if runHotkeys {
			listener := hotkey.NewListener(bindings(), hotkey.Callbacks{
				Start: func() {
					if !eng.Start() {
						fmt.Println("Already running or no click points.")
					}
				},
				Stop: eng.Stop,
			}, log.Named("hotkey"))
			listener.Start()
			defer listener.Stop()

			fmt.Printf("Profile '%s' loaded (%d points). Press %s to start, %s to stop, Ctrl+C to quit.\n",
				prof.Name, len(prof.ClickPoints), appCfg.Hotkeys.Start, appCfg.Hotkeys.Stop)
			<-sig
			eng.Stop()
			<-eng.Done()
			return nil
		}

		if !eng.Start() {
			return fmt.Errorf("profile '%s' has no click points", prof.Name)
		}
		select {
		case <-eng.Done():
		case <-sig:
			fmt.Println("Interrupted, stopping after the current click...")
			eng.Stop()
			<-eng.Done()
		}
		return nil
	},
}

func init() {
	runCmd.Flags().IntVar(&runLoops, "loops", 0, "override the profile's loop count (0 = until stopped)")
	runCmd.Flags().Float64Var(&runStartDelay, "start-delay", 0, "override the profile's start delay in seconds")
	runCmd.Flags().BoolVar(&runNoVerify, "no-verify", false, "skip the pre-click position drift check")
	runCmd.Flags().BoolVar(&runHotkeys, "hotkeys", false, "wait for the global start/stop hotkeys instead of starting immediately")
	rootCmd.AddCommand(runCmd)
}

func bindings() hotkey.Bindings {
	return hotkey.Bindings{
		Capture: appCfg.Hotkeys.Capture,
		Start:   appCfg.Hotkeys.Start,
		Stop:    appCfg.Hotkeys.Stop,
		Exit:    appCfg.Hotkeys.Exit,
	}
}

// resolveProfilePath accepts an explicit file path, a bare profile name,
// or a name with the .json extension.
func resolveProfilePath(store *profile.Store, arg string) (string, error) {
	candidates := []string{
		arg,
		filepath.Join(store.Dir(), arg),
		filepath.Join(store.Dir(), arg+".json"),
	}
	for _, c := range candidates {
		if info, err := os.Stat(c); err == nil && !info.IsDir() {
			return c, nil
		}
	}
	return "", fmt.Errorf("profile %q not found (looked in %s)", arg, store.Dir())
}
