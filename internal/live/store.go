package live

import (
	"net/url"

	"github.com/zsajjad/dr-admission-portal-sub001/internal/listing"
	"github.com/zsajjad/dr-admission-portal-sub001/internal/observability"
)

// meteredStore counts every URL write of the wrapped store.
type meteredStore struct {
	*listing.URLStore
	metrics *observability.Metrics
}

func (s meteredStore) SetParams(params url.Values, nav listing.Navigation) {
	s.URLStore.SetParams(params, nav)
	s.metrics.Navigation("set")
}

func (s meteredStore) DeleteParams(keys ...string) {
	s.URLStore.DeleteParams(keys...)
	s.metrics.Navigation("delete")
}

func (s meteredStore) SetNewParams(params url.Values) {
	s.URLStore.SetNewParams(params)
	s.metrics.Navigation("reset")
}

var _ listing.ParamStore = meteredStore{}
