package catalog

import (
	"context"
	"errors"
	"testing"

	"showroom/internal/cache"
	"showroom/internal/domain"
	"showroom/internal/domain/models/catalog"
)

func folder(id, name string, parentID *string) catalog.Folder {
	return catalog.Folder{ID: id, Name: name, ParentID: parentID, OwnerID: "user-1"}
}

func TestBreadcrumb(t *testing.T) {
	// root <- a <- b <- c
	folders := []catalog.Folder{
		folder("a", "A", nil),
		folder("b", "B", strPtr("a")),
		folder("c", "C", strPtr("b")),
		folder("d", "D", nil),
	}

	tests := []struct {
		name      string
		currentID string
		wantIDs   []string
	}{
		{name: "deep folder", currentID: "c", wantIDs: []string{"a", "b", "c"}},
		{name: "middle folder", currentID: "b", wantIDs: []string{"a", "b"}},
		{name: "top-level folder", currentID: "a", wantIDs: []string{"a"}},
		{name: "unknown id resolves to nil", currentID: "ghost", wantIDs: nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			chain, err := Breadcrumb(folders, tt.currentID)
			if err != nil {
				t.Fatalf("Breadcrumb() error = %v", err)
			}
			if len(chain) != len(tt.wantIDs) {
				t.Fatalf("Breadcrumb() returned %d entries, want %d", len(chain), len(tt.wantIDs))
			}
			for i, want := range tt.wantIDs {
				if chain[i].ID != want {
					t.Errorf("chain[%d].ID = %q, want %q", i, chain[i].ID, want)
				}
			}
		})
	}
}

func TestBreadcrumbCorruptHierarchy(t *testing.T) {
	// x and y point at each other; the walk must terminate with an error
	folders := []catalog.Folder{
		folder("x", "X", strPtr("y")),
		folder("y", "Y", strPtr("x")),
	}

	_, err := Breadcrumb(folders, "x")
	if !errors.Is(err, domain.ErrCorruptHierarchy) {
		t.Fatalf("Breadcrumb() error = %v, want ErrCorruptHierarchy", err)
	}
}

func TestBreadcrumbDanglingParent(t *testing.T) {
	folders := []catalog.Folder{
		folder("b", "B", strPtr("gone")),
	}

	chain, err := Breadcrumb(folders, "b")
	if err != nil {
		t.Fatalf("Breadcrumb() error = %v", err)
	}
	if len(chain) != 1 || chain[0].ID != "b" {
		t.Fatalf("Breadcrumb() = %v, want chain ending at b", chain)
	}
}

func TestIsDescendant(t *testing.T) {
	folders := []catalog.Folder{
		folder("a", "A", nil),
		folder("b", "B", strPtr("a")),
		folder("c", "C", strPtr("b")),
		folder("d", "D", nil),
	}

	tests := []struct {
		name       string
		ancestor   string
		candidate  string
		want       bool
	}{
		{name: "direct child", ancestor: "a", candidate: "b", want: true},
		{name: "grandchild", ancestor: "a", candidate: "c", want: true},
		{name: "self", ancestor: "a", candidate: "a", want: true},
		{name: "sibling tree", ancestor: "a", candidate: "d", want: false},
		{name: "inverted", ancestor: "c", candidate: "a", want: false},
		{name: "unknown candidate", ancestor: "a", candidate: "ghost", want: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := IsDescendant(folders, tt.ancestor, tt.candidate)
			if err != nil {
				t.Fatalf("IsDescendant() error = %v", err)
			}
			if got != tt.want {
				t.Errorf("IsDescendant(%s, %s) = %v, want %v", tt.ancestor, tt.candidate, got, tt.want)
			}
		})
	}
}

func TestIsDescendantCorruptHierarchy(t *testing.T) {
	folders := []catalog.Folder{
		folder("x", "X", strPtr("y")),
		folder("y", "Y", strPtr("x")),
	}

	_, err := IsDescendant(folders, "a", "x")
	if !errors.Is(err, domain.ErrCorruptHierarchy) {
		t.Fatalf("IsDescendant() error = %v, want ErrCorruptHierarchy", err)
	}
}

func TestPartition(t *testing.T) {
	folders := []catalog.Folder{
		folder("a", "A", nil),
		folder("b", "B", strPtr("a")),
		folder("c", "C", strPtr("a")),
		folder("d", "D", nil),
	}

	children, rest := Partition(folders, strPtr("a"))
	if len(children) != 2 {
		t.Fatalf("Partition() children = %d, want 2", len(children))
	}
	if len(rest) != 2 {
		t.Fatalf("Partition() rest = %d, want 2", len(rest))
	}

	rootChildren, _ := Partition(folders, nil)
	if len(rootChildren) != 2 {
		t.Fatalf("Partition(root) children = %d, want 2", len(rootChildren))
	}
}

func TestTreeViewStaleFolderResolvesToRoot(t *testing.T) {
	folderRepo := newMemFolderRepo()
	productRepo := newMemProductRepo()
	queries := cache.NewQueryCache()
	svc := NewTreeService(folderRepo, productRepo, queries, testLogger())

	ctx := context.Background()
	a := folder("a", "A", nil)
	if err := folderRepo.Create(ctx, &a); err != nil {
		t.Fatal(err)
	}

	view, err := svc.View(ctx, "user-1", strPtr("deleted-elsewhere"))
	if err != nil {
		t.Fatalf("View() error = %v", err)
	}
	if view.Folder != nil {
		t.Errorf("view.Folder = %v, want nil (root)", view.Folder)
	}
	if len(view.Breadcrumb) != 0 {
		t.Errorf("view.Breadcrumb = %v, want empty", view.Breadcrumb)
	}
	if len(view.Folders) != 1 || view.Folders[0].ID != "a" {
		t.Errorf("view.Folders = %v, want the root listing", view.Folders)
	}
}

func TestTreeViewBreadcrumbAndListing(t *testing.T) {
	folderRepo := newMemFolderRepo()
	productRepo := newMemProductRepo()
	queries := cache.NewQueryCache()
	svc := NewTreeService(folderRepo, productRepo, queries, testLogger())

	ctx := context.Background()
	a := folder("a", "A", nil)
	b := folder("b", "B", strPtr("a"))
	c := folder("c", "C", strPtr("b"))
	for _, f := range []*catalog.Folder{&a, &b, &c} {
		if err := folderRepo.Create(ctx, f); err != nil {
			t.Fatal(err)
		}
	}
	product := catalog.Product{ID: "p1", Name: "Chair", FolderID: strPtr("b"), OwnerID: "user-1", AssetPath: "x"}
	if err := productRepo.Create(ctx, &product); err != nil {
		t.Fatal(err)
	}

	view, err := svc.View(ctx, "user-1", strPtr("b"))
	if err != nil {
		t.Fatalf("View() error = %v", err)
	}

	if view.Folder == nil || view.Folder.ID != "b" {
		t.Fatalf("view.Folder = %v, want b", view.Folder)
	}
	if len(view.Breadcrumb) != 2 || view.Breadcrumb[0].ID != "a" || view.Breadcrumb[1].ID != "b" {
		t.Errorf("view.Breadcrumb = %v, want [a b]", view.Breadcrumb)
	}
	if len(view.Folders) != 1 || view.Folders[0].ID != "c" {
		t.Errorf("view.Folders = %v, want [c]", view.Folders)
	}
	if len(view.Products) != 1 || view.Products[0].ID != "p1" {
		t.Errorf("view.Products = %v, want [p1]", view.Products)
	}
}

func TestTreeViewUsesCachedListing(t *testing.T) {
	folderRepo := newMemFolderRepo()
	productRepo := newMemProductRepo()
	queries := cache.NewQueryCache()
	svc := NewTreeService(folderRepo, productRepo, queries, testLogger())

	ctx := context.Background()
	a := folder("a", "A", nil)
	if err := folderRepo.Create(ctx, &a); err != nil {
		t.Fatal(err)
	}

	if _, err := svc.View(ctx, "user-1", nil); err != nil {
		t.Fatalf("View() error = %v", err)
	}

	// Mutate the repo behind the cache's back: a second render must keep
	// serving the cached folder set until a mutation invalidates it.
	b := folder("b", "B", nil)
	if err := folderRepo.Create(ctx, &b); err != nil {
		t.Fatal(err)
	}

	view, err := svc.View(ctx, "user-1", nil)
	if err != nil {
		t.Fatalf("View() error = %v", err)
	}
	if len(view.Folders) != 1 {
		t.Fatalf("view.Folders = %d entries, want 1 from cache", len(view.Folders))
	}

	queries.Invalidate(cache.FolderSetKey("user-1"))

	view, err = svc.View(ctx, "user-1", nil)
	if err != nil {
		t.Fatalf("View() error = %v", err)
	}
	if len(view.Folders) != 2 {
		t.Fatalf("view.Folders = %d entries after invalidation, want 2", len(view.Folders))
	}
}
