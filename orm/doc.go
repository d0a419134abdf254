/*
Package orm provides a thin layer on top of the key value store that
persists Models under a bucket specific prefix.

A ModelBucket stores a single model type. Keys are the primary identity of
the model and are prefixed with the bucket name so that many buckets can
share one store:

	<bucket name>:<key>

Models are validated before every write.
*/
package orm
