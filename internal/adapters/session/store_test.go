package session

import (
	"errors"
	"sync"
	"testing"

	"github.com/google/uuid"
	. "github.com/smartystreets/goconvey/convey"

	"github.com/okian/co2dash/internal/domain/selection"
)

func TestStore(t *testing.T) {
	Convey("Given an empty store", t, func() {
		s := New(WithCapacity(2))

		Convey("When a session is created", func() {
			id := s.Create()

			Convey("Then it holds the initial selection", func() {
				_, err := uuid.Parse(id)
				So(err, ShouldBeNil)
				sel, ok := s.Get(id)
				So(ok, ShouldBeTrue)
				So(sel, ShouldResemble, selection.Initial())
				So(s.Len(), ShouldEqual, 1)
			})
		})

		Convey("When a selection is stored", func() {
			id := s.Create()
			want := selection.Initial().WithCountry("France").WithYear(2005)
			s.Put(id, want)

			Convey("Then Get returns it", func() {
				got, ok := s.Get(id)
				So(ok, ShouldBeTrue)
				So(got, ShouldResemble, want)
			})
		})

		Convey("When an unknown id is resolved", func() {
			unknown := uuid.NewString()
			id, sel, err := s.Resolve(unknown)

			Convey("Then a session is created under that id", func() {
				So(err, ShouldBeNil)
				So(id, ShouldEqual, unknown)
				So(sel, ShouldResemble, selection.Initial())
				_, ok := s.Get(unknown)
				So(ok, ShouldBeTrue)
			})
		})

		Convey("When an empty id is resolved", func() {
			id, _, err := s.Resolve("")

			Convey("Then a new id is issued", func() {
				So(err, ShouldBeNil)
				So(id, ShouldNotBeEmpty)
				So(s.Len(), ShouldEqual, 1)
			})
		})

		Convey("When a malformed id is resolved", func() {
			_, _, err := s.Resolve("not-a-uuid")

			Convey("Then ErrInvalidID is returned and nothing is stored", func() {
				So(errors.Is(err, ErrInvalidID), ShouldBeTrue)
				So(s.Len(), ShouldEqual, 0)
			})
		})

		Convey("When the capacity is exceeded", func() {
			a := s.Create()
			b := s.Create()
			_, _ = s.Get(a) // a becomes most recently used
			c := s.Create()

			Convey("Then the least recently used session is evicted", func() {
				So(s.Len(), ShouldEqual, 2)
				_, okA := s.Get(a)
				_, okB := s.Get(b)
				_, okC := s.Get(c)
				So(okA, ShouldBeTrue)
				So(okB, ShouldBeFalse)
				So(okC, ShouldBeTrue)
			})
		})
	})

	Convey("Given sessions updated concurrently", t, func() {
		s := New()
		ids := make([]string, 8)
		for i := range ids {
			ids[i] = s.Create()
		}

		var wg sync.WaitGroup
		for i, id := range ids {
			wg.Add(1)
			go func(year int, id string) {
				defer wg.Done()
				s.Put(id, selection.Initial().WithYear(year))
			}(1990+i, id)
		}
		wg.Wait()

		Convey("Then each session keeps its own selection", func() {
			for i, id := range ids {
				sel, ok := s.Get(id)
				So(ok, ShouldBeTrue)
				y, has := sel.Year()
				So(has, ShouldBeTrue)
				So(y, ShouldEqual, 1990+i)
			}
		})
	})

	Convey("Given a non-positive capacity option", t, func() {
		s := New(WithCapacity(0), WithLogger(nil))

		Convey("Then the default capacity is used", func() {
			So(s.Capacity(), ShouldEqual, defaultCapacity)
		})
	})
}
