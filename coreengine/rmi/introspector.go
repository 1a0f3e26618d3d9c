package rmi

import (
	"reflect"
	"sync"
	"time"

	"github.com/jeeves-cluster-organization/rmi-introspector/coreengine/observability"
	"go.opentelemetry.io/otel/codes"
)

// IntrospectionContext owns both process-wide caches and is the entry point
// for Examine. A single cache-wide mutex serializes the whole
// validate-merge-publish-resolve sequence; resolve reenters Examine for
// referenced interfaces through examineLocked rather than reacquiring the
// mutex, since the monitor is already held by the same caller.
type IntrospectionContext struct {
	mu    sync.Mutex
	cache *IdentityCache
	cfg   ContextConfig
}

// NewIntrospectionContext constructs a context with its own caches.
func NewIntrospectionContext(cfg ContextConfig) *IntrospectionContext {
	if cfg.Logger == nil {
		cfg.Logger = &defaultLogger{}
	}
	if cfg.QueryTimeout <= 0 {
		cfg.QueryTimeout = DefaultContextConfig().QueryTimeout
	}
	return &IntrospectionContext{
		cache: NewIdentityCache(),
		cfg:   cfg,
	}
}

var defaultContext = NewIntrospectionContext(DefaultContextConfig())

// DefaultContext returns the package-level convenience context.
func DefaultContext() *IntrospectionContext { return defaultContext }

// CacheHitCount returns the number of Examine calls this context has served
// from cache across all callers. It is a monotonic aggregate counter, not a
// per-call signal — concurrent callers racing against the same snapshot will
// see each other's hits. Use ExamineWithInfo when a specific call's own
// cache-hit status is needed.
func (ctx *IntrospectionContext) CacheHitCount() int64 { return ctx.cache.HitCount() }

// Examine introspects src against the default context. See
// IntrospectionContext.Examine.
func Examine(src *InterfaceSource) (*InterfaceDescriptor, error) {
	return defaultContext.Examine(src)
}

// Examine validates src, merges inherited method overrides, publishes a
// provisional InterfaceDescriptor, then resolves it. Fails with
// ErrNullInput when src is nil, or *MalformedInterfaceError when validation
// fails.
//
// The caller's wait is bounded by cfg.QueryTimeout: if it elapses first,
// Examine returns *ExamineTimeoutError while examineLocked keeps running in
// the background goroutine and still publishes into the cache, the same
// give-up-without-cancelling shape as commbus.InMemoryCommBus.QuerySync.
func (ctx *IntrospectionContext) Examine(src *InterfaceSource) (*InterfaceDescriptor, error) {
	desc, _, err := ctx.ExamineWithInfo(src)
	return desc, err
}

// ExamineWithInfo behaves like Examine but additionally reports whether this
// specific call was served from cache. Unlike diffing CacheHitCount before
// and after a call, the hit flag comes directly from the goroutine that
// handled this src, so it is correct under concurrent callers.
func (ctx *IntrospectionContext) ExamineWithInfo(src *InterfaceSource) (*InterfaceDescriptor, bool, error) {
	if src == nil {
		return nil, false, ErrNullInput
	}

	type outcome struct {
		desc      *InterfaceDescriptor
		fromCache bool
		err       error
	}
	done := make(chan outcome, 1)
	go func() {
		ctx.mu.Lock()
		defer ctx.mu.Unlock()
		desc, fromCache, err := ctx.examineLocked(src)
		done <- outcome{desc: desc, fromCache: fromCache, err: err}
	}()

	timer := time.NewTimer(ctx.cfg.QueryTimeout)
	defer timer.Stop()
	select {
	case res := <-done:
		return res.desc, res.fromCache, res.err
	case <-timer.C:
		return nil, false, NewExamineTimeoutError(src.Name, ctx.cfg.QueryTimeout.Seconds())
	}
}

// examineLocked assumes the context mutex is already held by the calling
// goroutine; resolve calls back into this method directly so that
// self-referential and mutually-referential interfaces do not deadlock. The
// returned bool reports whether desc was served from cache rather than
// freshly published.
func (ctx *IntrospectionContext) examineLocked(src *InterfaceSource) (*InterfaceDescriptor, bool, error) {
	spanCtx, span := traceExamine(src.Name)
	defer span.End()

	if desc, ok := ctx.cache.get(src); ok {
		ctx.cache.recordHit()
		observability.RecordExamine("cache_hit")
		observability.RecordCacheHit(src.Name)
		ctx.cfg.Logger.Debug("examine cache hit", "interface", src.Name)
		return desc, true, nil
	}

	ctx.cache.recordValidate()
	observability.RecordValidate(src.Name)
	if err := validateInterfaceSource(src); err != nil {
		observability.RecordExamine("malformed")
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return nil, false, err
	}

	methods, order, err := mergeMethods(src)
	if err != nil {
		observability.RecordExamine("malformed")
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return nil, false, err
	}
	ordered := make([]*MethodDescriptor, 0, len(order))
	for _, key := range order {
		ordered = append(ordered, methods[key])
	}

	for _, m := range ordered {
		if !m.DeclaresException(remoteCallFailureType) {
			err := NewMalformedInterfaceError(src.Name, m.name, "method does not declare the mandatory remote-failure exception")
			observability.RecordExamine("malformed")
			span.RecordError(err)
			span.SetStatus(codes.Error, err.Error())
			return nil, false, err
		}
		if m.asynchronous {
			if m.ret != nil {
				err := NewMalformedInterfaceError(src.Name, m.name, "asynchronous method must return void")
				observability.RecordExamine("malformed")
				span.RecordError(err)
				span.SetStatus(codes.Error, err.Error())
				return nil, false, err
			}
			for _, e := range m.exceptions {
				gt, _ := e.SerializedType()
				if !isSupertypeOrEqual(gt, remoteCallFailureType) {
					err := NewMalformedInterfaceError(src.Name, m.name, "asynchronous method must throw only the remote-failure exception or a supertype")
					observability.RecordExamine("malformed")
					span.RecordError(err)
					span.SetStatus(codes.Error, err.Error())
					return nil, false, err
				}
			}
		}
	}

	provisional := &InterfaceDescriptor{
		id:      newIdentifier(),
		name:    src.Name,
		methods: ordered,
	}

	published, inserted := ctx.cache.putIfAbsent(src, provisional)
	if !inserted {
		// Raced with an already-published entry for this exact source;
		// the existing one wins, ours is discarded.
		observability.RecordExamine("cache_hit")
		return published, true, nil
	}

	resolveStart := time.Now()
	_, resolveSpan := traceResolve(spanCtx, src.Name)
	err = ctx.resolve(provisional)
	resolveSpan.End()
	observability.RecordResolveDuration(src.Name, time.Since(resolveStart).Seconds())
	if err != nil {
		ctx.cache.remove(src)
		observability.RecordExamine("error")
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return nil, false, err
	}

	observability.RecordExamine("published")
	ctx.cfg.Logger.Info("examine published", "interface", src.Name, "methods", len(provisional.methods))
	return provisional, false, nil
}

// validateInterfaceSource checks rule 1: src must be a public interface that
// transitively extends the remote marker type.
func validateInterfaceSource(src *InterfaceSource) error {
	if !src.IsInterface || !src.Public || !src.ExtendsRemote {
		return NewMalformedInterfaceError(src.Name, "", "candidate type must be a public interface that transitively extends the remote marker type")
	}
	return nil
}

// mergeMethods walks src and its supertypes, accumulating temporary method
// descriptors keyed by (name, full signature), intersecting duplicates that
// arrive through multiple inheritance paths.
func mergeMethods(src *InterfaceSource) (map[string]*MethodDescriptor, []string, error) {
	out := make(map[string]*MethodDescriptor)
	var order []string
	visited := make(map[*InterfaceSource]bool)
	if err := collectVisibleMethods(src, visited, out, &order); err != nil {
		return nil, nil, err
	}
	return out, order, nil
}

func collectVisibleMethods(src *InterfaceSource, visited map[*InterfaceSource]bool, out map[string]*MethodDescriptor, order *[]string) error {
	if visited[src] {
		return nil
	}
	visited[src] = true
	for _, st := range src.Supertypes {
		if err := collectVisibleMethods(st, visited, out, order); err != nil {
			return err
		}
	}
	for i := range src.Methods {
		tmp := buildTempMethodDescriptor(&src.Methods[i])
		key := methodKey(tmp)
		if existing, ok := out[key]; ok {
			merged, err := intersectMethodDescriptors(existing, tmp)
			if err != nil {
				return err
			}
			out[key] = merged
		} else {
			out[key] = tmp
			*order = append(*order, key)
		}
	}
	return nil
}

func buildTempMethodDescriptor(ms *MethodSource) *MethodDescriptor {
	params := make([]*ParameterDescriptor, len(ms.Parameters))
	for i, tr := range ms.Parameters {
		params[i] = buildTempParameterDescriptor(tr)
	}
	exceptions := make([]*ParameterDescriptor, len(ms.Exceptions))
	for i, tr := range ms.Exceptions {
		exceptions[i] = buildTempParameterDescriptor(tr)
	}
	var ret *ParameterDescriptor
	if ms.Return != nil {
		ret = buildTempParameterDescriptor(*ms.Return)
	}
	return &MethodDescriptor{
		id:                    newIdentifier(),
		name:                  ms.Name,
		ret:                   ret,
		parameters:            params,
		exceptions:            exceptions,
		asynchronous:          ms.Annotations.Asynchronous,
		idempotent:            ms.Annotations.Idempotent,
		responseTimeoutMillis: ms.Annotations.ResponseTimeoutMillis,
	}
}

func buildTempParameterDescriptor(tr TypeRef) *ParameterDescriptor {
	if tr.Remote != nil {
		return &ParameterDescriptor{
			kind:       KindRemote,
			dimensions: tr.Dimensions,
			unshared:   true,
			pendingSrc: tr.Remote,
		}
	}
	return &ParameterDescriptor{
		kind:       KindValue,
		dimensions: tr.Dimensions,
		unshared:   isProvisionallyUnshared(tr.GoType),
		goType:     tr.GoType,
	}
}

func isProvisionallyUnshared(t reflect.Type) bool {
	if t == nil {
		return true
	}
	k := t.Kind()
	if k == reflect.Ptr {
		k = t.Elem().Kind()
	}
	switch k {
	case reflect.Bool, reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
		reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64,
		reflect.Float32, reflect.Float64, reflect.String:
		return true
	}
	return false
}

// resolve walks every MethodDescriptor belonging to desc and rewrites each
// temporary ParameterDescriptor to its final, interned form.
func (ctx *IntrospectionContext) resolve(desc *InterfaceDescriptor) error {
	for _, m := range desc.methods {
		for i, p := range m.parameters {
			resolved, err := ctx.resolveParameter(p)
			if err != nil {
				return err
			}
			m.parameters[i] = resolved
		}
		if m.ret != nil {
			resolved, err := ctx.resolveParameter(m.ret)
			if err != nil {
				return err
			}
			m.ret = resolved
		}
		for i, e := range m.exceptions {
			resolved, err := ctx.resolveParameter(e)
			if err != nil {
				return err
			}
			m.exceptions[i] = resolved
		}
		ctx.applyUnsharedSweep(m.parameters)
	}
	return nil
}

func (ctx *IntrospectionContext) resolveParameter(p *ParameterDescriptor) (*ParameterDescriptor, error) {
	if p.kind == KindRemote && p.remoteType == nil {
		nested, _, err := ctx.examineLocked(p.pendingSrc)
		if err != nil {
			return nil, err
		}
		return ctx.cache.internParameter(&ParameterDescriptor{
			kind:       KindRemote,
			dimensions: p.dimensions,
			unshared:   p.unshared,
			remoteType: nested,
		}), nil
	}
	return ctx.cache.internParameter(&ParameterDescriptor{
		kind:       p.kind,
		dimensions: p.dimensions,
		unshared:   p.unshared,
		goType:     p.goType,
		remoteType: p.remoteType,
	}), nil
}

// applyUnsharedSweep implements the per-method unshared classification: if
// any parameter is not provisionally unshared, every parameter becomes
// shared; otherwise duplicate serialized types among provisionally-unshared
// parameters are downgraded pairwise, forward-scanning with in-place memo.
func (ctx *IntrospectionContext) applyUnsharedSweep(params []*ParameterDescriptor) {
	anyShared := false
	for _, p := range params {
		if !p.unshared {
			anyShared = true
			break
		}
	}
	if anyShared {
		for i, p := range params {
			if p.unshared {
				params[i] = ctx.cache.internParameter(p.withUnshared(false))
			}
		}
		return
	}
	for i := 0; i < len(params); i++ {
		if !params[i].unshared {
			continue
		}
		for j := i + 1; j < len(params); j++ {
			if !params[j].unshared {
				continue
			}
			if sameSerializedType(params[i], params[j]) {
				params[i] = ctx.cache.internParameter(params[i].withUnshared(false))
				params[j] = ctx.cache.internParameter(params[j].withUnshared(false))
				break
			}
		}
	}
}
