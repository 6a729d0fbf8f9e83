package kconfig

import (
	"os"
	"path/filepath"
	"testing"
)

func writeModel(t *testing.T, dir, contents string) string {
	t.Helper()
	path := filepath.Join(dir, "Kmodel")
	if err := os.WriteFile(path, []byte(contents), 0o644); err != nil {
		t.Fatalf("write model: %v", err)
	}
	return path
}

const sampleModel = `
menu "Networking"
  symbol NET bool "Networking support"
  symbol NET_CORE tristate "Core netfilter support" depends="NET"
  symbol NET_SELECTED bool "Selected by core" depends="NET"
endmenu
symbol HOSTNAME string "Hostname" default="localhost"
`

func TestParseModelBuildsMenuAndSymbols(t *testing.T) {
	dir := t.TempDir()
	path := writeModel(t, dir, sampleModel)

	e := NewEngine()
	if err := e.ParseModel(path); err != nil {
		t.Fatalf("ParseModel: %v", err)
	}

	net, ok := e.FindSymbol("NET")
	if !ok {
		t.Fatalf("expected NET symbol")
	}
	if net.Type != TypeBool {
		t.Errorf("NET type = %v, want Bool", net.Type)
	}

	core, ok := e.FindSymbol("NET_CORE")
	if !ok {
		t.Fatalf("expected NET_CORE symbol")
	}
	if core.Type != TypeTristate {
		t.Errorf("NET_CORE type = %v, want Tristate", core.Type)
	}
	if core.DirDep.Eval() != No {
		t.Errorf("NET_CORE ceiling should be No while NET=No, got %v", core.DirDep.Eval())
	}

	host, ok := e.FindSymbol("HOSTNAME")
	if !ok {
		t.Fatalf("expected HOSTNAME symbol")
	}
	if host.Str != "localhost" {
		t.Errorf("HOSTNAME default = %q, want localhost", host.Str)
	}

	menus := e.MenusPreorder()
	if len(menus) == 0 {
		t.Fatalf("expected at least one menu node with a prompt")
	}
}

func TestTristateInRangeRespectsDependency(t *testing.T) {
	dir := t.TempDir()
	path := writeModel(t, dir, sampleModel)
	e := NewEngine()
	if err := e.ParseModel(path); err != nil {
		t.Fatalf("ParseModel: %v", err)
	}
	net, _ := e.FindSymbol("NET")
	core, _ := e.FindSymbol("NET_CORE")

	if e.TristateInRange(core, Yes) {
		t.Errorf("NET_CORE should not be settable to Yes while NET=No")
	}

	e.setTristate(net, Yes)
	if !e.TristateInRange(core, Yes) {
		t.Errorf("NET_CORE should be settable to Yes once NET=Yes")
	}
}

func TestLoadConfigAndWriteConfigRoundTrip(t *testing.T) {
	dir := t.TempDir()
	modelPath := writeModel(t, dir, sampleModel)
	e := NewEngine()
	if err := e.ParseModel(modelPath); err != nil {
		t.Fatalf("ParseModel: %v", err)
	}

	cfgPath := filepath.Join(dir, ".config")
	if err := os.WriteFile(cfgPath, []byte("CONFIG_NET=y\nCONFIG_NET_CORE=m\n"), 0o644); err != nil {
		t.Fatalf("write config fixture: %v", err)
	}
	if err := e.LoadConfig(cfgPath); err != nil {
		t.Fatalf("LoadConfig: %v", err)
	}

	net, _ := e.FindSymbol("NET")
	core, _ := e.FindSymbol("NET_CORE")
	if net.Tri != Yes {
		t.Errorf("NET = %v, want Yes", net.Tri)
	}
	if core.Tri != Mod {
		t.Errorf("NET_CORE = %v, want Mod", core.Tri)
	}

	outPath := filepath.Join(dir, ".config.out")
	if err := e.WriteConfig(outPath); err != nil {
		t.Fatalf("WriteConfig: %v", err)
	}
	data, err := os.ReadFile(outPath)
	if err != nil {
		t.Fatalf("read written config: %v", err)
	}
	if !contains(string(data), "CONFIG_NET=y") {
		t.Errorf("written config missing CONFIG_NET=y, got:\n%s", data)
	}
}

func contains(haystack, needle string) bool {
	return len(haystack) >= len(needle) && (func() bool {
		for i := 0; i+len(needle) <= len(haystack); i++ {
			if haystack[i:i+len(needle)] == needle {
				return true
			}
		}
		return false
	})()
}

func TestResolveFindsDependencyFix(t *testing.T) {
	dir := t.TempDir()
	path := writeModel(t, dir, sampleModel)
	e := NewEngine()
	if err := e.ParseModel(path); err != nil {
		t.Fatalf("ParseModel: %v", err)
	}

	sol := e.Resolve([]Fix{{Symbol: "NET_CORE", Kind: FixBoolean, TargetTri: Yes}})
	if len(sol) == 0 {
		t.Fatalf("expected at least one diagnosis resolving NET_CORE=y")
	}
	diag := sol[0]
	found := false
	for _, fix := range diag {
		if fix.Symbol == "NET" && fix.TargetTri == Yes {
			found = true
		}
	}
	if !found {
		t.Errorf("expected diagnosis to include NET=Yes, got %+v", diag)
	}
}

func TestResolveUnsolvableReturnsEmpty(t *testing.T) {
	dir := t.TempDir()
	model := `
symbol A bool "A"
symbol B bool "B" depends="!A"
`
	path := writeModel(t, dir, model)
	e := NewEngine()
	if err := e.ParseModel(path); err != nil {
		t.Fatalf("ParseModel: %v", err)
	}
	// B depends on !A. With A pinned at Yes, B's ceiling is No, and the only
	// candidate chain the solver finds (A=Yes, then B=Yes) still leaves B
	// out of range, so B can never be forced to Yes.
	a, _ := e.FindSymbol("A")
	e.setTristate(a, Yes)
	sol := e.Resolve([]Fix{{Symbol: "B", Kind: FixBoolean, TargetTri: Yes}})
	if len(sol) != 0 {
		t.Errorf("expected empty solution, got %+v", sol)
	}
}
