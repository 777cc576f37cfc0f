package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"gocache/internal/cache"
	"gocache/internal/logging"
)

func newDemoCommand(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "demo",
		Short: "Walk through LRU eviction on a capacity-2 cache",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runDemo(cmd, a)
		},
	}
}

func runDemo(cmd *cobra.Command, a *app) error {
	log := logging.FromContext(cmd.Context())
	out := cmd.OutOrStdout()

	c, err := cache.New[string, string](cache.Config{Capacity: 2, Logger: &a.log})
	if err != nil {
		return err
	}
	log.Info().Int("capacity", c.Cap()).Msg("demo starting")

	// -------------------------------------------------------------------
	// 1) LRU eviction (capacity=2)
	// -------------------------------------------------------------------
	if _, _, err := c.Put("a", "A"); err != nil {
		return err
	}
	if _, _, err := c.Put("b", "B"); err != nil {
		return err
	}

	// Touch "a" so "b" becomes least-recently-used.
	if v, ok, err := c.Get("a"); err != nil {
		return err
	} else if ok {
		fmt.Fprintf(out, "GET a = %q (touches a -> MRU)\n", v)
	}

	// Insert "c" => cache overflows and evicts LRU (expected: "b").
	if _, _, err := c.Put("c", "C"); err != nil {
		return err
	}
	if _, ok, err := c.Get("b"); err != nil {
		return err
	} else if !ok {
		fmt.Fprintln(out, "GET b: missing (evicted as LRU)")
	}
	fmt.Fprintf(out, "keys after eviction (MRU->LRU): %v\n", c.Keys())

	// -------------------------------------------------------------------
	// 2) Update in place and explicit removal
	// -------------------------------------------------------------------
	if prev, replaced, err := c.Put("a", "A2"); err != nil {
		return err
	} else if replaced {
		fmt.Fprintf(out, "PUT a replaced %q\n", prev)
	}
	if v, ok, err := c.Remove("c"); err != nil {
		return err
	} else if ok {
		fmt.Fprintf(out, "DEL c returned %q\n", v)
	}
	fmt.Fprintf(out, "keys after removal (MRU->LRU): %v\n", c.Keys())

	fmt.Fprintln(out, renderStats("demo", c, nil))
	return nil
}
