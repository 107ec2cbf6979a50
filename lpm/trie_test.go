package lpm

import "testing"

func mustPrefix(t *testing.T, s string) ([4]byte, int) {
	t.Helper()
	key, cidr, err := ParsePrefix(s)
	if err != nil {
		t.Fatalf("ParsePrefix(%q): %v", s, err)
	}
	return key, cidr
}

func mustKey(t *testing.T, s string) [4]byte {
	t.Helper()
	key, cidr, err := ParsePrefix(s + "/32")
	if err != nil || cidr != 32 {
		t.Fatalf("mustKey(%q): %v", s, err)
	}
	return key
}

func TestSearchSingleRoute(t *testing.T) {
	tbl := NewTable()
	p, c := mustPrefix(t, "10.0.0.0/8")
	if err := tbl.Insert(p, c, 0, 2); err != nil {
		t.Fatal(err)
	}
	found, _, iface := tbl.Search(mustKey(t, "10.1.2.3"))
	if !found || iface != 2 {
		t.Fatalf("got found=%v iface=%d, want found=true iface=2", found, iface)
	}
}

func TestSearchLongestPrefixWins(t *testing.T) {
	tbl := NewTable()
	p8, c8 := mustPrefix(t, "10.0.0.0/8")
	p16, c16 := mustPrefix(t, "10.1.0.0/16")
	if err := tbl.Insert(p8, c8, 0, 2); err != nil {
		t.Fatal(err)
	}
	if err := tbl.Insert(p16, c16, 0, 3); err != nil {
		t.Fatal(err)
	}
	found, _, iface := tbl.Search(mustKey(t, "10.1.2.3"))
	if !found || iface != 3 {
		t.Fatalf("got found=%v iface=%d, want found=true iface=3 (longest prefix)", found, iface)
	}
}

func TestSearchNoCoveringPrefix(t *testing.T) {
	tbl := NewTable()
	p, c := mustPrefix(t, "10.1.0.0/16")
	if err := tbl.Insert(p, c, 0, 3); err != nil {
		t.Fatal(err)
	}
	found, _, _ := tbl.Search(mustKey(t, "10.2.2.2"))
	if found {
		t.Fatal("expected not found: no /8 covering route exists")
	}
}

func TestSearchHalfSpaceRoute(t *testing.T) {
	tbl := NewTable()
	p, c := mustPrefix(t, "0.0.0.0/1")
	if err := tbl.Insert(p, c, 0, 4); err != nil {
		t.Fatal(err)
	}
	found, _, iface := tbl.Search(mustKey(t, "127.0.0.1"))
	if !found || iface != 4 {
		t.Fatalf("got found=%v iface=%d, want found=true iface=4", found, iface)
	}
	found, _, _ = tbl.Search(mustKey(t, "200.0.0.1"))
	if found {
		t.Fatal("expected not found: 200.0.0.1 has MSB=1, route only covers 0.0.0.0/1")
	}
}

func TestReinsertOverwrites(t *testing.T) {
	tbl := NewTable()
	p, c := mustPrefix(t, "192.168.0.0/16")
	if err := tbl.Insert(p, c, 0x0a000001, 5); err != nil {
		t.Fatal(err)
	}
	if err := tbl.Insert(p, c, 0x0a000002, 7); err != nil {
		t.Fatal(err)
	}
	found, nh, iface := tbl.Search(mustKey(t, "192.168.1.1"))
	if !found || iface != 7 || nh != 0x0a000002 {
		t.Fatalf("reinsert did not overwrite: found=%v iface=%d nh=%x", found, iface, nh)
	}
}

func TestRoundTripManyPrefixes(t *testing.T) {
	tbl := NewTable()
	routes := []struct {
		prefix string
		ip     string
		iface  uint8
	}{
		{"1.2.3.0/24", "1.2.3.77", 1},
		{"1.2.0.0/16", "1.2.200.200", 2},
		{"8.8.8.8/32", "8.8.8.8", 3},
		{"172.16.0.0/12", "172.31.255.255", 4},
		{"128.0.0.0/1", "250.1.1.1", 5},
	}
	for _, r := range routes {
		p, c := mustPrefix(t, r.prefix)
		if err := tbl.Insert(p, c, 0, r.iface); err != nil {
			t.Fatalf("insert %s: %v", r.prefix, err)
		}
	}
	for _, r := range routes {
		found, _, iface := tbl.Search(mustKey(t, r.ip))
		if !found || iface != r.iface {
			t.Fatalf("%s: got found=%v iface=%d, want iface=%d", r.ip, found, iface, r.iface)
		}
	}
}

func TestInsertPreconditions(t *testing.T) {
	tbl := NewTable()
	key, _ := mustPrefix(t, "10.0.0.0/8")

	if err := tbl.Insert(key, 0, 0, 1); err == nil {
		t.Fatal("expected error for cidr=0")
	}
	if err := tbl.Insert(key, 33, 0, 1); err == nil {
		t.Fatal("expected error for cidr=33")
	}
	if err := tbl.Insert(key, 8, 0, 0); err == nil {
		t.Fatal("expected error for next-hop interface 0 (reserved sentinel)")
	}
}

func TestEndToEndScenarioRouteLookup(t *testing.T) {
	// Concrete scenario 5 from the spec, exercised at the trie level: a
	// frame destined for 10.0.0.5 with route 10.0.0.0/24 -> iface 2 must
	// resolve to iface 2 so the forwarding engine selects TX ring 2.
	tbl := NewTable()
	p, c := mustPrefix(t, "10.0.0.0/24")
	if err := tbl.Insert(p, c, 0, 2); err != nil {
		t.Fatal(err)
	}
	found, _, iface := tbl.Search(mustKey(t, "10.0.0.5"))
	if !found || iface != 2 {
		t.Fatalf("got found=%v iface=%d, want found=true iface=2", found, iface)
	}
}

func TestNotFoundOnEmptyTable(t *testing.T) {
	tbl := NewTable()
	found, _, _ := tbl.Search(mustKey(t, "1.1.1.1"))
	if found {
		t.Fatal("expected not found on empty table")
	}
}

func TestDestroyResetsTable(t *testing.T) {
	tbl := NewTable()
	p, c := mustPrefix(t, "10.0.0.0/8")
	if err := tbl.Insert(p, c, 0, 2); err != nil {
		t.Fatal(err)
	}
	tbl.Destroy()
	if tbl.arena.next != 0 || tbl.arena.cells != nil {
		t.Fatal("Destroy did not release arena chain")
	}
}
