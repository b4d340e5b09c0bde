package kb

import (
	"encoding/json"
	"fmt"
	"log"
	"os"

	"github.com/fsnotify/fsnotify"
)

// LoadFile reads a KB override file: a JSON array of category nodes in the
// same shape as Node (arrays, so declaration order survives decoding).
func LoadFile(path string) ([]*Node, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("could not read %s: %w", path, err)
	}

	var roots []*Node
	if err := json.Unmarshal(b, &roots); err != nil {
		return nil, fmt.Errorf("invalid JSON in %s: %w", path, err)
	}
	if len(roots) == 0 {
		return nil, fmt.Errorf("%s contains no categories", path)
	}
	for _, n := range roots {
		if err := validateNode(n); err != nil {
			return nil, fmt.Errorf("%s: %w", path, err)
		}
	}
	return roots, nil
}

func validateNode(n *Node) error {
	if n.Name == "" {
		return fmt.Errorf("category with empty name")
	}
	if len(n.Children) > 0 && len(n.Questions) > 0 {
		return fmt.Errorf("category %q has both children and questions", n.Name)
	}
	for _, qa := range n.Questions {
		if qa.Question == "" || qa.Answer == "" {
			return fmt.Errorf("category %q has an empty question or answer", n.Name)
		}
	}
	for _, c := range n.Children {
		if err := validateNode(c); err != nil {
			return err
		}
	}
	return nil
}

// Watch reloads the knowledge base whenever the file changes. A reload that
// fails keeps the previous tree. Returns a stop function.
func Watch(k *KB, path string) (func(), error) {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}
	if err := watcher.Add(path); err != nil {
		watcher.Close()
		return nil, err
	}

	go func() {
		for {
			select {
			case event, ok := <-watcher.Events:
				if !ok {
					return
				}
				if event.Op&(fsnotify.Write|fsnotify.Create) == 0 {
					continue
				}
				roots, err := LoadFile(path)
				if err != nil {
					log.Printf("⚠️  KB reload failed, keeping previous tree: %v", err)
					continue
				}
				k.Replace(roots)
				log.Printf("✅ KB reloaded from %s (%d categories, %d questions)",
					path, k.CategoryCount(), k.QuestionCount())
			case err, ok := <-watcher.Errors:
				if !ok {
					return
				}
				log.Printf("⚠️  KB watcher error: %v", err)
			}
		}
	}()

	return func() { watcher.Close() }, nil
}
