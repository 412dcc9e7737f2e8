/*
Package ports defines the driven ports (interfaces) of the lineation service.

These interfaces decouple the HTTP adapter and the CLI from concrete storage
backends, so results can be cached in process or shared through Redis.

# Key Interfaces

  - ResultStore: caches lineation records by the fingerprint of their input.
  - DistributedLocker: serializes work on the same fingerprint across replicas.
*/
package ports
