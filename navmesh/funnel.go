package navmesh

// refinePath pulls the channel taut from start and returns the funnel apexes
// visited on the way, in order. channel[0] is the exit portal of the start
// cell and seeds the funnel; the last entry is the [goal, goal] sentinel.
//
// After a collapse onto the bound taken from portal k, both bounds restart at
// portal k+1 and scanning resumes at k+2. The sentinel can only ever narrow
// the funnel, so the goal is never emitted.
//
// See https://digestingduck.blogspot.com/2010/03/simple-stupid-funnel-algorithm.html
func refinePath(start Vec2, channel [][2]Vec2) []Vec2 {
	var result []Vec2
	if len(channel) == 0 {
		return result
	}

	apex := start
	leftIndex, rightIndex := 0, 0
	for i := 1; i < len(channel); {
		newLeft, newRight := channel[i][0], channel[i][1]
		left := channel[leftIndex][0]
		right := channel[rightIndex][1]

		// New left vertex.
		if Area2(apex, newLeft, right) >= 0 {
			if Area2(apex, left, newLeft) >= 0 {
				leftIndex = i
				left = newLeft
			}
		} else {
			// It crossed the right bound: the right vertex is a corner.
			apex = right
			result = append(result, apex)
			leftIndex, rightIndex = rightIndex+1, rightIndex+1
			i = rightIndex + 1
			continue
		}

		// New right vertex.
		if Area2(apex, left, newRight) >= 0 {
			if Area2(apex, newRight, right) >= 0 {
				rightIndex = i
			}
		} else {
			apex = left
			result = append(result, apex)
			leftIndex, rightIndex = leftIndex+1, leftIndex+1
			i = leftIndex + 1
			continue
		}

		i++
	}
	return result
}
