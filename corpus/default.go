package corpus

import (
	"embed"
	"fmt"
	"os"
	"sync"
)

//go:embed thedata/*.yaml
var embeddedData embed.FS

// EnvDataDir is the environment variable that, when set, names a fixture
// directory to use instead of the built-in corpus.
const EnvDataDir = "ACT4E_DATA"

var defaultCorpus struct {
	once sync.Once
	c    Corpus
	err  error
}

// Default returns the process-wide fixture corpus: the directory named by
// ACT4E_DATA if set, otherwise the corpus embedded in the binary. The corpus
// is loaded on first call and reused; callers must not mutate it. Code that
// wants an explicit source should call Load or LoadFS instead.
func Default() (Corpus, error) {
	defaultCorpus.once.Do(func() {
		if dir := os.Getenv(EnvDataDir); dir != "" {
			defaultCorpus.c, defaultCorpus.err = Load(dir)
			if defaultCorpus.err != nil {
				defaultCorpus.err = fmt.Errorf("loading fixtures from %s=%s: %w", EnvDataDir, dir, defaultCorpus.err)
			}
			return
		}
		defaultCorpus.c, defaultCorpus.err = LoadFS(embeddedData, "thedata")
	})
	return defaultCorpus.c, defaultCorpus.err
}
