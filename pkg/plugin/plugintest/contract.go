// Package plugintest provides shared contract tests that verify any
// plugin.Plugin implementation behaves correctly. Every module's test
// file should call TestPluginContract to ensure conformance.
package plugintest

import (
	"context"
	"testing"

	"github.com/leasetrace/leasetrace/pkg/plugin"
	"go.uber.org/zap/zaptest"
)

// TestPluginContract runs a suite of behavioral contract tests against
// any plugin.Plugin implementation. depsFn builds the Dependencies the
// plugin needs for Init (store, config, bus); it is called once per
// subtest so plugins get a fresh environment each time.
//
//	func TestContract(t *testing.T) {
//	    plugintest.TestPluginContract(t,
//	        func() plugin.Plugin { return classify.New() },
//	        func(t *testing.T, name string) plugin.Dependencies { ... })
//	}
func TestPluginContract(t *testing.T, factory func() plugin.Plugin, depsFn func(t *testing.T, name string) plugin.Dependencies) {
	t.Helper()

	if depsFn == nil {
		depsFn = defaultDeps
	}

	t.Run("Info_returns_valid_metadata", func(t *testing.T) {
		p := factory()
		info := p.Info()
		if info.Name == "" {
			t.Error("Info().Name must not be empty")
		}
		if info.Version == "" {
			t.Error("Info().Version must not be empty")
		}
		if info.APIVersion < plugin.APIVersionMin {
			t.Errorf("Info().APIVersion = %d, below minimum %d", info.APIVersion, plugin.APIVersionMin)
		}
	})

	t.Run("Init_succeeds_with_valid_deps", func(t *testing.T) {
		p := factory()
		if err := p.Init(context.Background(), depsFn(t, p.Info().Name)); err != nil {
			t.Fatalf("Init() error = %v", err)
		}
	})

	t.Run("Start_after_Init", func(t *testing.T) {
		p := factory()
		if err := p.Init(context.Background(), depsFn(t, p.Info().Name)); err != nil {
			t.Fatalf("Init() error = %v", err)
		}
		if err := p.Start(context.Background()); err != nil {
			t.Fatalf("Start() error = %v", err)
		}
		// Clean up.
		_ = p.Stop(context.Background())
	})

	t.Run("Stop_without_Start_does_not_panic", func(t *testing.T) {
		p := factory()
		if err := p.Init(context.Background(), depsFn(t, p.Info().Name)); err != nil {
			t.Fatalf("Init() error = %v", err)
		}
		if err := p.Stop(context.Background()); err != nil {
			t.Fatalf("Stop() without Start error = %v", err)
		}
	})

	t.Run("Info_is_idempotent", func(t *testing.T) {
		p := factory()
		a := p.Info()
		b := p.Info()
		if a.Name != b.Name || a.Version != b.Version {
			t.Error("Info() must return consistent results")
		}
	})
}

func defaultDeps(t *testing.T, name string) plugin.Dependencies {
	return plugin.Dependencies{
		Logger: zaptest.NewLogger(t).Named(name),
	}
}
