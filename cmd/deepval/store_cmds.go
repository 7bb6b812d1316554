package main

import (
	"fmt"
	"os"
	"strconv"

	"github.com/olekukonko/tablewriter"
	"github.com/olekukonko/tablewriter/renderer"
	"github.com/olekukonko/tablewriter/tw"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/ravenfield/argus-deepval/deepval"
	"github.com/ravenfield/argus-deepval/deepval/storage"
)

var storeCmd = &cobra.Command{
	Use:   "store",
	Short: "Manage the local snapshot store",
}

var storePutCmd = &cobra.Command{
	Use:   "put <file>",
	Short: "Store a snapshot of a value",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		v, err := readValue(args[0])
		if err != nil {
			return err
		}
		return withStore(func(s storage.Store) error {
			snap, err := s.Put(v)
			if err != nil {
				return err
			}
			fmt.Println(snap.ID)
			return nil
		})
	},
}

var storeGetCmd = &cobra.Command{
	Use:   "get <id>",
	Short: "Print a stored value",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return withStore(func(s storage.Store) error {
			v, err := s.Get(args[0])
			if err != nil {
				return err
			}
			fmt.Println(deepval.Format(v))
			return nil
		})
	},
}

var storeLsCmd = &cobra.Command{
	Use:   "ls",
	Short: "List snapshots",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return withStore(func(s storage.Store) error {
			snaps, err := s.List()
			if err != nil {
				return err
			}
			if len(snaps) == 0 {
				fmt.Println("no snapshots")
				return nil
			}

			table := tablewriter.NewTable(os.Stdout,
				tablewriter.WithRenderer(renderer.NewMarkdown()),
				tablewriter.WithHeaderAutoFormat(tw.Off),
			)
			table.Header([]string{"ID", "Fingerprint", "Created", "Bytes"})
			for _, snap := range snaps {
				table.Append([]string{
					snap.ID,
					snap.Fingerprint[:12],
					snap.CreatedAt.Format("2006-01-02 15:04:05"),
					strconv.Itoa(snap.Size),
				})
			}
			table.Render()
			return nil
		})
	},
}

var storeRmCmd = &cobra.Command{
	Use:   "rm <id>...",
	Short: "Delete snapshots",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return withStore(func(s storage.Store) error {
			for _, id := range args {
				if err := s.Delete(id); err != nil {
					return fmt.Errorf("%s: %w", id, err)
				}
			}
			return nil
		})
	},
}

// withStore opens the configured badger store for the duration of fn.
func withStore(fn func(storage.Store) error) error {
	s, err := storage.NewBadgerStore(viper.GetString("store.path"))
	if err != nil {
		return err
	}
	defer s.Close()
	return fn(s)
}

func init() {
	storeCmd.PersistentFlags().String("path", defaultStorePath(), "store directory")
	viper.BindPFlag("store.path", storeCmd.PersistentFlags().Lookup("path"))

	storeCmd.AddCommand(storePutCmd, storeGetCmd, storeLsCmd, storeRmCmd)
	rootCmd.AddCommand(storeCmd)
}
