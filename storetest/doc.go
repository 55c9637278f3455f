// Package storetest provides a reusable contract suite for geocore.Store
// implementations backing the geoassist persistent tier.
//
// Example pattern:
//
//	func TestRedisStoreContract(t *testing.T) {
//		client := newTestRedisClient(t)
//		store := geoassist.NewRedisStore(ctx, client, geoassist.WithPrefix("test"))
//		neighbor := geoassist.NewRedisStore(ctx, client, geoassist.WithPrefix("other"))
//
//		storetest.RunStoreContract(t, store, storetest.Options{
//			Neighbor:  neighbor,
//			Retention: time.Second,
//			Wait:      1500 * time.Millisecond,
//		})
//	}
package storetest
