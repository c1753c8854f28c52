package server

import (
	"net/http"
	"os"
	"path"
	"path/filepath"
)

// TreeNode is one entry of a directory listing.
type TreeNode struct {
	Name     string     `json:"name"`
	Path     string     `json:"path"`
	Dir      bool       `json:"dir"`
	Children []TreeNode `json:"children,omitempty"`
}

func (s *Server) handleTree(w http.ResponseWriter, r *http.Request) {
	kind, err := rootFromParam(r)
	if err != nil {
		s.respondError(w, r, err)
		return
	}

	root := s.sandbox.Root(kind)
	nodes, err := listTree(root, "")
	if err != nil {
		s.respondError(w, r, err)
		return
	}

	s.respondJSON(w, http.StatusOK, map[string]interface{}{"tree": nodes})
}

// listTree walks dir recursively, reporting paths relative to the root.
func listTree(root, rel string) ([]TreeNode, error) {
	entries, err := os.ReadDir(filepath.Join(root, filepath.FromSlash(rel)))
	if err != nil {
		return nil, err
	}

	nodes := make([]TreeNode, 0, len(entries))
	for _, entry := range entries {
		childRel := path.Join(rel, entry.Name())
		node := TreeNode{
			Name: entry.Name(),
			Path: childRel,
			Dir:  entry.IsDir(),
		}

		if entry.IsDir() {
			children, err := listTree(root, childRel)
			if err != nil {
				return nil, err
			}
			node.Children = children
		}

		nodes = append(nodes, node)
	}

	return nodes, nil
}
