package mediastore

import (
	"context"

	"github.com/jetaudio/jetaudio/internal/audio"
)

// Resolver performs the content query against a Store and maps each row to
// an audio.Audio. It is the production source of the audio repository.
type Resolver struct {
	Store *Store
}

// AudioData returns the current contents of the index in query order.
func (r Resolver) AudioData(ctx context.Context) ([]audio.Audio, error) {
	rows, err := r.Store.Query(ctx)
	if err != nil {
		return nil, err
	}
	list := make([]audio.Audio, 0, len(rows))
	for _, row := range rows {
		list = append(list, row.Audio())
	}
	return list, nil
}
