package pipeline

import (
	"sync"
	"testing"
)

func TestNewCache(t *testing.T) {
	cache := NewCache()
	if cache == nil {
		t.Fatal("NewCache returned nil")
	}
	if cache.Len() != 0 {
		t.Errorf("Len: got %d, want 0", cache.Len())
	}
}

func TestCache_LoadReusesImage(t *testing.T) {
	cache := NewCache()
	path := createJPEG(t, 10, 10)

	first, err := cache.Load(path, LoadOptions{})
	if err != nil {
		t.Fatalf("first Load failed: %v", err)
	}
	second, err := cache.Load(path, LoadOptions{})
	if err != nil {
		t.Fatalf("second Load failed: %v", err)
	}

	if first != second {
		t.Error("second Load should return the cached image")
	}
	if cache.Len() != 1 {
		t.Errorf("Len: got %d, want 1", cache.Len())
	}
}

func TestCache_OptionsAreSeparateEntries(t *testing.T) {
	cache := NewCache()
	path := createJPEG(t, 40, 20)

	full, err := cache.Load(path, LoadOptions{})
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	small, err := cache.Load(path, LoadOptions{MaxDimension: 10})
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	if full.Width() != 40 || small.Width() != 10 {
		t.Errorf("widths: got %d and %d, want 40 and 10", full.Width(), small.Width())
	}
	if cache.Len() != 2 {
		t.Errorf("Len: got %d, want 2", cache.Len())
	}

	cache.Evict(path)
	if cache.Len() != 0 {
		t.Errorf("Len after Evict: got %d, want 0", cache.Len())
	}
}

func TestCache_ErrorsNotCached(t *testing.T) {
	cache := NewCache()

	if _, err := cache.Load("/nonexistent/file.jpg", LoadOptions{}); err == nil {
		t.Fatal("expected error, got nil")
	}
	if cache.Len() != 0 {
		t.Errorf("Len: got %d, want 0", cache.Len())
	}
}

func TestCache_Clear(t *testing.T) {
	cache := NewCache()
	for i := 0; i < 3; i++ {
		if _, err := cache.Load(createJPEG(t, 4, 4), LoadOptions{}); err != nil {
			t.Fatalf("Load failed: %v", err)
		}
	}
	if cache.Len() != 3 {
		t.Fatalf("Len: got %d, want 3", cache.Len())
	}

	cache.Clear()
	if cache.Len() != 0 {
		t.Errorf("Len after Clear: got %d, want 0", cache.Len())
	}
	cache.Evict("/not/cached.jpg")
}

func TestCache_Concurrent(t *testing.T) {
	cache := NewCache()
	path := createJPEG(t, 16, 16)

	var wg sync.WaitGroup
	images := make([]*Image, 10)
	errs := make(chan error, len(images))
	for i := range images {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			img, err := cache.Load(path, LoadOptions{})
			if err != nil {
				errs <- err
				return
			}
			images[i] = img
		}(i)
	}
	wg.Wait()
	close(errs)

	for err := range errs {
		t.Fatalf("concurrent Load failed: %v", err)
	}
	for i, img := range images {
		if img != images[0] {
			t.Errorf("Load %d returned a separately decoded image", i)
		}
	}
	if cache.Len() != 1 {
		t.Errorf("Len: got %d, want 1", cache.Len())
	}
}
