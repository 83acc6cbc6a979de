/*
Package observability provides tools for monitoring the presentation engine.

It includes Prometheus collectors fed from domain.LifecycleHooks, a plain-text
summary of the gathered samples, log hooks that audit every transition, and
Chain for combining hook sets.
*/
package observability
