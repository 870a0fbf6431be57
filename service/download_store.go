package service

import (
	"time"

	"github.com/google/uuid"
	"github.com/patrickmn/go-cache"

	"github.com/Aashish23092/planilla-ledger/dto"
)

const DefaultDownloadTTL = 15 * time.Minute

type download struct {
	fileName string
	data     []byte
}

// DownloadStore keeps generated workbooks in memory between a preview and
// its download.
type DownloadStore struct {
	cache *cache.Cache
}

func NewDownloadStore(ttl time.Duration) *DownloadStore {
	return &DownloadStore{
		cache: cache.New(ttl, 2*ttl),
	}
}

// Save stores a workbook and returns its download id.
func (s *DownloadStore) Save(fileName string, data []byte) string {
	id := uuid.New().String()
	s.cache.SetDefault(id, download{fileName: fileName, data: data})
	return id
}

func (s *DownloadStore) Get(id string) ([]byte, string, error) {
	v, ok := s.cache.Get(id)
	if !ok {
		return nil, "", dto.ErrDownloadNotFound
	}
	d := v.(download)
	return d.data, d.fileName, nil
}
